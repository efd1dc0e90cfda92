package config

const (
	defaultVersion        = "dev"
	defaultWorkers        = 16
	defaultOutputDir      = "."
	defaultPrimaryDir     = "expixel-sounds"
	defaultFuzzyDir       = "resource-sounds"
	defaultConvertedDir   = "resource-sounds-converted"
	defaultMatchThreshold = 0.8
	defaultFFmpegBinary   = "ffmpeg"
	defaultHistoryPath    = "~/.local/share/cryswap/history.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	defaultResourcePackMcmeta = `{
  "pack": {
    "pack_format": 34,
    "description": "Pixelmon sound replacer"
  }
}`
	defaultDataPackMcmeta = `{
  "pack": {
    "pack_format": 48,
    "description": "Pixelmon sound replacer datapack, updates species data to have the correct sound mappings"
  }
}`
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Version:   defaultVersion,
		Workers:   defaultWorkers,
		OutputDir: defaultOutputDir,
		Pack: Pack{
			ResourceMcmeta: defaultResourcePackMcmeta,
			DataMcmeta:     defaultDataPackMcmeta,
		},
		Pools: Pools{
			PrimaryDir:     defaultPrimaryDir,
			FuzzyDir:       defaultFuzzyDir,
			ConvertedDir:   defaultConvertedDir,
			MatchThreshold: defaultMatchThreshold,
		},
		Selection: Selection{
			TreatAsBaseAll: []string{"base"},
		},
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
