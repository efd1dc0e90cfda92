package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"cryswap/internal/selection"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeWorkers(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	if err := c.normalizeSelection(); err != nil {
		return err
	}
	c.normalizeOverrides()
	c.normalizeDeepCopy()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Source, err = expandPath(strings.TrimSpace(c.Source)); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.OutputDir, err = expandPath(c.OutputDir); err != nil {
		return fmt.Errorf("output_dir: %w", err)
	}
	if strings.TrimSpace(c.Pools.PrimaryDir) == "" {
		c.Pools.PrimaryDir = defaultPrimaryDir
	}
	if c.Pools.PrimaryDir, err = expandPath(c.Pools.PrimaryDir); err != nil {
		return fmt.Errorf("pools.primary_dir: %w", err)
	}
	if strings.TrimSpace(c.Pools.FuzzyDir) == "" {
		c.Pools.FuzzyDir = defaultFuzzyDir
	}
	if c.Pools.FuzzyDir, err = expandPath(c.Pools.FuzzyDir); err != nil {
		return fmt.Errorf("pools.fuzzy_dir: %w", err)
	}
	if strings.TrimSpace(c.Pools.ConvertedDir) == "" {
		c.Pools.ConvertedDir = defaultConvertedDir
	}
	if c.Pools.ConvertedDir, err = expandPath(c.Pools.ConvertedDir); err != nil {
		return fmt.Errorf("pools.converted_dir: %w", err)
	}
	if c.Pools.MatchThreshold == 0 {
		c.Pools.MatchThreshold = defaultMatchThreshold
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Version = strings.TrimSpace(c.Version)
	return nil
}

func (c *Config) normalizeWorkers() error {
	if value, ok := os.LookupEnv("CRYSWAP_WORKERS"); ok && strings.TrimSpace(value) != "" {
		workers, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("CRYSWAP_WORKERS: %w", err)
		}
		c.Workers = workers
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if value, ok := os.LookupEnv("FFMPEG_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.Binary = strings.TrimSpace(value)
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeSelection() error {
	c.Selection.DumbInsert = normalizeNames(c.Selection.DumbInsert)
	c.Selection.SkipFormNamesAll = normalizeNames(c.Selection.SkipFormNamesAll)
	c.Selection.TreatAsBaseAll = normalizeNames(c.Selection.TreatAsBaseAll)

	treatAsBase := make(map[string]string, len(c.Selection.TreatAsBase))
	for species, form := range c.Selection.TreatAsBase {
		treatAsBase[normalizeName(species)] = strings.TrimSpace(form)
	}
	c.Selection.TreatAsBase = treatAsBase

	species := make([]string, 0, len(c.Selection.SkipFormNames))
	for name := range c.Selection.SkipFormNames {
		species = append(species, name)
	}
	sort.Strings(species)

	c.skipRules = make(map[string]selection.FormRule, len(species))
	for _, name := range species {
		rule, err := selection.ParseFormRule(c.Selection.SkipFormNames[name])
		if err != nil {
			return fmt.Errorf("selection.skip_form_names.%s: %w", name, err)
		}
		c.skipRules[normalizeName(name)] = rule
	}
	return nil
}

func (c *Config) normalizeOverrides() {
	normalize := func(entries []Override) []Override {
		out := make([]Override, 0, len(entries))
		for _, entry := range entries {
			entry.Species = normalizeName(entry.Species)
			entry.Form = strings.TrimSpace(entry.Form)
			entry.Asset = strings.TrimSpace(entry.Asset)
			out = append(out, entry)
		}
		return out
	}
	c.Overrides.Primary = normalize(c.Overrides.Primary)
	c.Overrides.Fuzzy = normalize(c.Overrides.Fuzzy)
}

func (c *Config) normalizeDeepCopy() {
	for i := range c.DeepCopy {
		c.DeepCopy[i].Source = strings.TrimSpace(c.DeepCopy[i].Source)
		c.DeepCopy[i].Destination = strings.TrimSpace(c.DeepCopy[i].Destination)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeNames(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := normalizeName(value)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
