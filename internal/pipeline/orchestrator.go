package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"cryswap/internal/logging"
	"cryswap/internal/registry"
	"cryswap/internal/resolve"
	"cryswap/internal/selection"
	"cryswap/internal/species"
)

// Resolver finds the sound file for a key.
type Resolver interface {
	Resolve(ctx context.Context, key resolve.Key) (resolve.Match, error)
}

// Registrar records a sound in the shared sound index.
type Registrar interface {
	RegisterMobSound(species, form string) string
}

// SoundWriter stores sound bytes in the shared resource pack.
type SoundWriter interface {
	WriteSound(fileName, origin string, data []byte) (bool, error)
}

// Outcome summarizes a completed orchestrator run.
type Outcome struct {
	// Changed holds the records whose sound lists were modified, in input order.
	Changed []*species.Record
	// Forms is the number of forms that received a sound.
	Forms int
	// Tiers counts matches per "pool/tier".
	Tiers map[string]int
}

// Orchestrator processes species records concurrently.
type Orchestrator struct {
	policy   *selection.Policy
	resolver Resolver
	registry Registrar
	pack     SoundWriter
	workers  int
	logger   *slog.Logger
}

// NewOrchestrator builds an orchestrator running workers goroutines.
func NewOrchestrator(policy *selection.Policy, resolver Resolver, reg Registrar, pack SoundWriter, workers int, logger *slog.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		policy:   policy,
		resolver: resolver,
		registry: reg,
		pack:     pack,
		workers:  workers,
		logger:   logging.NewComponentLogger(logger, "orchestrator"),
	}
}

type workerResult struct {
	forms int
	tiers map[string]int
}

// Run processes every record and returns the first error any worker hit.
func (o *Orchestrator) Run(ctx context.Context, records []*species.Record) (Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	indexes := make([]int, len(records))
	for i := range indexes {
		indexes[i] = i
	}
	chunks := Chunk(indexes, o.workers)
	changed := make([]bool, len(records))
	results := make([]workerResult, len(chunks))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
		done     atomic.Int64
		progress = newProgress(o.logger, len(records))
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	o.logger.Info("processing species",
		logging.Int("records", len(records)),
		logging.Int("workers", len(chunks)),
	)

	for w, chunk := range chunks {
		wg.Add(1)
		go func(w int, chunk []int) {
			defer wg.Done()
			wctx := logging.WithWorker(ctx, w)
			result := workerResult{tiers: make(map[string]int)}
			for _, idx := range chunk {
				if err := wctx.Err(); err != nil {
					fail(err)
					break
				}
				mutated, err := o.processRecord(wctx, records[idx], &result)
				if err != nil {
					fail(err)
					break
				}
				changed[idx] = mutated
				progress.step(done.Add(1))
			}
			results[w] = result
		}(w, chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return Outcome{}, firstErr
	}

	outcome := Outcome{Tiers: make(map[string]int)}
	for i, rec := range records {
		if changed[i] {
			outcome.Changed = append(outcome.Changed, rec)
		}
	}
	for _, result := range results {
		outcome.Forms += result.forms
		for tier, n := range result.tiers {
			outcome.Tiers[tier] += n
		}
	}
	o.logger.Info("species processed",
		logging.Int("records", len(records)),
		logging.Int("forms", outcome.Forms),
		logging.Int("changed", len(outcome.Changed)),
	)
	return outcome, nil
}

func (o *Orchestrator) processRecord(ctx context.Context, rec *species.Record, result *workerResult) (bool, error) {
	targets, err := o.policy.Plan(rec.Name(), rec.FormNames())
	if err != nil {
		return false, err
	}

	logger := logging.WithContext(ctx, o.logger)
	changed := false
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		key := resolve.Key{Entity: rec.Name(), Form: target.EffectiveForm}

		match, err := o.resolver.Resolve(ctx, key)
		if err != nil {
			return false, fmt.Errorf("%s: %w", rec.Path(), err)
		}
		data, err := os.ReadFile(match.Path)
		if err != nil {
			return false, fmt.Errorf("%s: read sound for %s: %w", rec.Path(), key, err)
		}

		id := o.registry.RegisterMobSound(key.Entity, key.Form)
		mutated, err := rec.ReplaceSounds(target.Index, []species.Sound{{SoundID: id, Range: species.SoundRange}})
		if err != nil {
			return false, fmt.Errorf("%s: %w", rec.Path(), err)
		}
		changed = changed || mutated

		fileName := registry.FileName(key.Entity, key.Form)
		if _, err := o.pack.WriteSound(fileName, match.Path, data); err != nil {
			return false, fmt.Errorf("%s: %w", rec.Path(), err)
		}

		result.forms++
		result.tiers[match.Pool+"/"+string(match.Tier)]++
		logger.Debug("form processed",
			logging.Subject(key.Entity, target.Form),
			logging.String(logging.FieldPool, match.Pool),
			logging.String("sound", fileName),
			logging.Bool("changed", mutated),
		)
	}
	return changed, nil
}

// progress logs sampled completion percentages from many workers.
type progress struct {
	sampler *logging.ProgressSampler
	logger  *slog.Logger
	total   int
}

func newProgress(logger *slog.Logger, total int) *progress {
	return &progress{sampler: logging.NewProgressSampler(total, 10), logger: logger, total: total}
}

func (p *progress) step(done int64) {
	if !p.sampler.ShouldLog(done) {
		return
	}
	p.logger.Info("progress",
		logging.Float64("percent", p.sampler.Percent(done)),
		logging.Int64("done", done),
		logging.Int("total", p.total),
	)
}
