package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cryswap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	source  map[string]string
}

// NewConfig produces a config seeded with unique temp directories per test.
// The primary and fuzzy pool directories exist and are empty, and the source
// archive is written from the entries given with WithSource.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Source = filepath.Join(base, "pixelmon.jar")
	cfgVal.Version = "test"
	cfgVal.Workers = 4
	cfgVal.OutputDir = filepath.Join(base, "out")
	cfgVal.Pools.PrimaryDir = filepath.Join(base, "primary")
	cfgVal.Pools.FuzzyDir = filepath.Join(base, "fuzzy")
	cfgVal.Pools.ConvertedDir = filepath.Join(base, "converted")
	cfgVal.History.Path = filepath.Join(base, "state", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
		source:  map[string]string{"assets/pixelmon/sounds.json": "{}"},
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{cfgVal.Pools.PrimaryDir, cfgVal.Pools.FuzzyDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	WriteJar(t, cfgVal.Source, builder.source)

	return builder.cfg
}

// WithSource adds entries to the generated source archive.
func WithSource(entries map[string]string) ConfigOption {
	return func(b *configBuilder) {
		for name, data := range entries {
			b.source[name] = data
		}
	}
}

// WithDumbInsert marks species as single-sound entities.
func WithDumbInsert(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Selection.DumbInsert = append(b.cfg.Selection.DumbInsert, names...)
	}
}

// WithHistory enables the run history database under the temp directory.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithFFmpeg points the transcoder at binary.
func WithFFmpeg(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFmpeg.Binary = binary
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.OutputDir)
}

// WriteConfigFile encodes cfg as TOML next to its temp directories and
// returns the file path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
