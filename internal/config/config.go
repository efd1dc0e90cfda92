package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cryswap/internal/selection"
)

//go:embed sample_config.toml
var sampleConfig string

// Pack contains the metadata written into both output packs.
type Pack struct {
	ResourceMcmeta string `toml:"resource_mcmeta"`
	DataMcmeta     string `toml:"data_mcmeta"`
	Credits        string `toml:"credits"`
}

// Pools contains the asset pool directories and fuzzy matching threshold.
type Pools struct {
	PrimaryDir     string  `toml:"primary_dir"`
	FuzzyDir       string  `toml:"fuzzy_dir"`
	ConvertedDir   string  `toml:"converted_dir"`
	MatchThreshold float64 `toml:"match_threshold"`
}

// Selection contains the form selection rules.
type Selection struct {
	// DumbInsert lists species that only get one sound, placed on their first form.
	DumbInsert []string `toml:"dumb_insert"`
	// SkipFormNamesAll lists form names skipped for every species.
	SkipFormNamesAll []string `toml:"skip_form_names_all"`
	// SkipFormNames maps a species to "all", a list of forms, or {except = [...]}.
	SkipFormNames map[string]any `toml:"skip_form_names"`
	// TreatAsBaseAll lists form names treated as the base sound for every species.
	TreatAsBaseAll []string `toml:"treat_as_base_all"`
	// TreatAsBase maps a species to the form treated as its base sound.
	TreatAsBase map[string]string `toml:"treat_as_base"`
}

// DeepCopy stages an extra copy of a sound file under a pre-existing name.
type DeepCopy struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
}

// Override pins a species/form pair to an asset name in one pool, or marks it silent.
type Override struct {
	Species string `toml:"species"`
	Form    string `toml:"form"`
	Asset   string `toml:"asset"`
	Silent  bool   `toml:"silent"`
}

// Overrides holds manual matches added on top of the built-in tables.
type Overrides struct {
	Primary []Override `toml:"primary"`
	Fuzzy   []Override `toml:"fuzzy"`
}

// FFmpeg contains configuration for the audio transcoder.
type FFmpeg struct {
	Binary string `toml:"binary"`
}

// History contains configuration for the run history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for cryswap.
//
// Configuration sections by subsystem:
//   - top level: source archive, version label, worker count, output directory
//   - Pack: pack.mcmeta blobs and credits text
//   - Pools: asset pool directories and the fuzzy match threshold
//   - Selection: form skip and base-sound rules
//   - DeepCopy: extra copies staged over pre-existing sound files
//   - Overrides: manual matches per pool
//   - FFmpeg: transcoder binary
//   - History: run history database
//   - Logging: log format, level, and optional log directory
type Config struct {
	Source    string     `toml:"source"`
	Version   string     `toml:"version"`
	Workers   int        `toml:"workers"`
	OutputDir string     `toml:"output_dir"`
	Pack      Pack       `toml:"pack"`
	Pools     Pools      `toml:"pools"`
	Selection Selection  `toml:"selection"`
	DeepCopy  []DeepCopy `toml:"deep_copy"`
	Overrides Overrides  `toml:"overrides"`
	FFmpeg    FFmpeg     `toml:"ffmpeg"`
	History   History    `toml:"history"`
	Logging   Logging    `toml:"logging"`

	skipRules map[string]selection.FormRule
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cryswap/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cryswap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a build writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.OutputDir, c.Pools.ConvertedDir}
	if c.Logging.Dir != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	if c.History.Enabled && c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SelectionRules returns the parsed form selection rules.
func (c *Config) SelectionRules() selection.Rules {
	return selection.Rules{
		DumbInsert:       c.Selection.DumbInsert,
		SkipFormNamesAll: c.Selection.SkipFormNamesAll,
		SkipFormNames:    c.skipRules,
		TreatAsBaseAll:   c.Selection.TreatAsBaseAll,
		TreatAsBase:      c.Selection.TreatAsBase,
	}
}

// OutputPaths returns the resource pack, data pack, and report paths for the configured version.
func (c *Config) OutputPaths() (resourcePack, dataPack, report string) {
	version := c.Version
	return filepath.Join(c.OutputDir, "cryswap-resource-pack-"+version+".zip"),
		filepath.Join(c.OutputDir, "cryswap-data-pack-"+version+".zip"),
		filepath.Join(c.OutputDir, "cryswap-report-"+version+".json")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
