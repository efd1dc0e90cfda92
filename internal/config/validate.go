package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validatePools(); err != nil {
		return err
	}
	if err := c.validatePack(); err != nil {
		return err
	}
	if err := c.validateDeepCopy(); err != nil {
		return err
	}
	if err := c.validateOverrides(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if strings.TrimSpace(c.Source) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/cryswap/config.toml"
		}
		return fmt.Errorf("source is required. Point it at the Pixelmon jar in %s (create with 'cryswap config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateRun() error {
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.Version == "" {
		return errors.New("version must be set")
	}
	if strings.ContainsAny(c.Version, `/\`) {
		return fmt.Errorf("version %q must not contain path separators", c.Version)
	}
	return nil
}

func (c *Config) validatePools() error {
	if strings.TrimSpace(c.Pools.PrimaryDir) == "" {
		return errors.New("pools.primary_dir must be set")
	}
	if strings.TrimSpace(c.Pools.FuzzyDir) == "" {
		return errors.New("pools.fuzzy_dir must be set")
	}
	if strings.TrimSpace(c.Pools.ConvertedDir) == "" {
		return errors.New("pools.converted_dir must be set")
	}
	if c.Pools.MatchThreshold <= 0 || c.Pools.MatchThreshold > 1 {
		return errors.New("pools.match_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validatePack() error {
	if !json.Valid([]byte(c.Pack.ResourceMcmeta)) {
		return errors.New("pack.resource_mcmeta must be valid JSON")
	}
	if !json.Valid([]byte(c.Pack.DataMcmeta)) {
		return errors.New("pack.data_mcmeta must be valid JSON")
	}
	return nil
}

func (c *Config) validateDeepCopy() error {
	for i, entry := range c.DeepCopy {
		if entry.Source == "" || entry.Destination == "" {
			return fmt.Errorf("deep_copy[%d]: source and destination must be set", i)
		}
	}
	return nil
}

func (c *Config) validateOverrides() error {
	check := func(pool string, entries []Override) error {
		for i, entry := range entries {
			if entry.Species == "" {
				return fmt.Errorf("overrides.%s[%d]: species must be set", pool, i)
			}
			if entry.Silent == (entry.Asset != "") {
				return fmt.Errorf("overrides.%s[%d]: set exactly one of asset or silent", pool, i)
			}
		}
		return nil
	}
	if err := check("primary", c.Overrides.Primary); err != nil {
		return err
	}
	return check("fuzzy", c.Overrides.Fuzzy)
}
