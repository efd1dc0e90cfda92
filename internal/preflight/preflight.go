package preflight

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"cryswap/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Warn marks a passed check that still deserves attention.
	Warn   bool
	Detail string
}

// RunAll executes the filesystem and binary checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckSourceArchive(cfg.Source),
		// A missing primary pool only means every entity falls through to the fuzzy pool.
		CheckReadableDirectory("Primary pool", cfg.Pools.PrimaryDir, true),
		CheckReadableDirectory("Fuzzy pool", cfg.Pools.FuzzyDir, false),
		CheckCreatableDirectory("Conversion cache", cfg.Pools.ConvertedDir),
		CheckCreatableDirectory("Output directory", cfg.OutputDir),
	}
	if cfg.History.Enabled {
		results = append(results, CheckCreatableDirectory("History directory", filepath.Dir(cfg.History.Path)))
	}

	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Path}
		if status.Detail != "" {
			result.Detail = fmt.Sprintf("%s (%s)", status.Command, status.Detail)
		}
		results = append(results, result)
	}
	return results
}

// Failed returns the names of failed results joined for an error message.
func Failed(results []Result) (string, bool) {
	var names []string
	for _, r := range results {
		if !r.Passed {
			names = append(names, r.Name+": "+r.Detail)
		}
	}
	return strings.Join(names, "; "), len(names) > 0
}
