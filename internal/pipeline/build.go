package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"cryswap/internal/archive"
	"cryswap/internal/config"
	"cryswap/internal/logging"
	"cryswap/internal/registry"
	"cryswap/internal/report"
	"cryswap/internal/resolve"
	"cryswap/internal/selection"
	"cryswap/internal/staging"
)

// Temporary files this old are leftovers of an interrupted build.
const staleTempAge = time.Hour

// Summary describes a finished build.
type Summary struct {
	RunID          string
	Version        string
	Source         string
	StartedAt      time.Time
	Duration       time.Duration
	Records        int
	Forms          int
	Tiers          map[string]int
	Report         report.Report
	ResourcePack   string
	DataPack       string
	ReportPath     string
	DeepCopies     int
	RegistryLength int
}

// Options adjusts a build for callers that need to swap collaborators.
type Options struct {
	// RunID identifies the build; a random one is generated when empty.
	RunID string
	// Transcoder converts fuzzy pool matches; ffmpeg from config when nil.
	Transcoder resolve.Transcoder
}

// Build runs a complete build described by cfg. On error no output file is
// created.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (Summary, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = logging.WithRunID(ctx, runID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "build"))
	started := time.Now()

	if err := cfg.EnsureDirectories(); err != nil {
		return Summary{}, err
	}

	src, err := archive.OpenSource(cfg.Source)
	if err != nil {
		return Summary{}, err
	}
	defer src.Close()

	existing := src.ExistingSounds()
	copies := DeepCopies(cfg.DeepCopy)
	if err := archive.ValidateDeepCopies(copies, existing); err != nil {
		return Summary{}, err
	}

	records, err := src.SpeciesRecords()
	if err != nil {
		return Summary{}, err
	}
	indexData, err := src.SoundIndex()
	if err != nil {
		return Summary{}, err
	}
	reg, err := registry.Parse(indexData)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("source loaded",
		logging.String("source", cfg.Source),
		logging.Int("records", len(records)),
		logging.Int("existing_sounds", len(existing)),
		logging.Int("index_entries", reg.Len()),
	)

	cache := resolve.NewConversionCache(cfg.Pools.ConvertedDir)
	unlock, err := cache.Lock()
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if err := unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release conversion cache lock", "cache_unlock_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove "+cache.LockPath()+" if no build is running"),
			)
		}
	}()

	for _, dir := range []string{cfg.OutputDir, cache.Dir()} {
		staging.CleanStale(ctx, dir, staleTempAge, logger)
	}

	resolver := NewResolver(cfg, cache, opts.Transcoder, logger)
	resourcePath, dataPath, reportPath := cfg.OutputPaths()

	pack, err := archive.CreateResourcePack(resourcePath)
	if err != nil {
		return Summary{}, err
	}
	finished := false
	var committed []string
	defer func() {
		if finished {
			return
		}
		_ = pack.Abort()
		for _, path := range committed {
			_ = os.Remove(path)
		}
	}()

	orch := NewOrchestrator(selection.NewPolicy(cfg.SelectionRules()), resolver, reg, pack, cfg.Workers, logger)
	outcome, err := orch.Run(ctx, records)
	if err != nil {
		return Summary{}, err
	}

	if err := pack.ApplyDeepCopies(copies, src); err != nil {
		return Summary{}, err
	}
	written := pack.Written()

	index, err := reg.Encode()
	if err != nil {
		return Summary{}, err
	}

	changedPaths := make([]string, 0, len(outcome.Changed))
	for _, rec := range outcome.Changed {
		changedPaths = append(changedPaths, rec.Path())
	}
	rep := report.Build(written, existing, changedPaths)

	if err := archive.WriteDataPack(dataPath, archive.Metadata{Mcmeta: cfg.Pack.DataMcmeta, Credits: cfg.Pack.Credits}, outcome.Changed); err != nil {
		return Summary{}, err
	}
	committed = append(committed, dataPath)
	if err := rep.Write(reportPath); err != nil {
		return Summary{}, err
	}
	committed = append(committed, reportPath)
	if err := pack.Finish(index, archive.Metadata{Mcmeta: cfg.Pack.ResourceMcmeta, Credits: cfg.Pack.Credits}); err != nil {
		return Summary{}, err
	}
	finished = true

	summary := Summary{
		RunID:          runID,
		Version:        cfg.Version,
		Source:         cfg.Source,
		StartedAt:      started,
		Duration:       time.Since(started),
		Records:        len(records),
		Forms:          outcome.Forms,
		Tiers:          outcome.Tiers,
		Report:         rep,
		ResourcePack:   resourcePath,
		DataPack:       dataPath,
		ReportPath:     reportPath,
		DeepCopies:     len(copies),
		RegistryLength: reg.Len(),
	}
	logger.Info("build complete",
		logging.String("resource_pack", resourcePath),
		logging.String("data_pack", dataPath),
		logging.Int("added", len(rep.AddedSoundFiles)),
		logging.Int("replaced", len(rep.ReplacedSoundFiles)),
		logging.Int("changed_species", len(rep.ChangedSpeciesFiles)),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// NewResolver builds the pool chain configured by cfg: the primary .ogg pool
// first, then the fuzzy .wav pool converting into cache.
func NewResolver(cfg *config.Config, cache *resolve.ConversionCache, transcoder resolve.Transcoder, logger *slog.Logger) *resolve.Resolver {
	if transcoder == nil {
		transcoder = resolve.NewFFmpeg(cfg.FFmpeg.Binary)
	}
	primary := resolve.NewPrimaryPool(cfg.Pools.PrimaryDir,
		resolve.DefaultPrimaryOverrides().With(Overrides(cfg.Overrides.Primary)))
	fuzzy := resolve.NewFuzzyPool(cfg.Pools.FuzzyDir,
		resolve.DefaultFuzzyOverrides().With(Overrides(cfg.Overrides.Fuzzy)),
		cache, transcoder,
		resolve.WithThreshold(cfg.Pools.MatchThreshold),
		resolve.WithLogger(logger),
	)
	return resolve.NewResolver(logger, primary, fuzzy)
}

// Overrides converts configured manual matches into a resolve table.
func Overrides(list []config.Override) resolve.Overrides {
	out := make(resolve.Overrides, len(list))
	for _, o := range list {
		out[resolve.Key{Entity: o.Species, Form: o.Form}] = resolve.Override{Asset: o.Asset, Silent: o.Silent}
	}
	return out
}

// DeepCopies converts configured deep copies.
func DeepCopies(list []config.DeepCopy) []archive.DeepCopy {
	out := make([]archive.DeepCopy, 0, len(list))
	for _, c := range list {
		out = append(out, archive.DeepCopy{Source: c.Source, Destination: c.Destination})
	}
	return out
}

func (s Summary) String() string {
	return fmt.Sprintf("%d species, %d forms, %d added, %d replaced, %d unchanged",
		s.Records, s.Forms, len(s.Report.AddedSoundFiles), len(s.Report.ReplacedSoundFiles), len(s.Report.UnchangedSoundFiles))
}
