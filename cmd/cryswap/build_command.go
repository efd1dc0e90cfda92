package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cryswap/internal/history"
	"cryswap/internal/logging"
	"cryswap/internal/pipeline"
	"cryswap/internal/preflight"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		workers       int
		version       string
		skipPreflight bool
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve every species sound and write the packs and report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				if workers <= 0 {
					return errors.New("--workers must be positive")
				}
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("version") {
				cfg.Version = version
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if !skipPreflight {
				if summary, failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg)); failed {
					return fmt.Errorf("preflight failed: %s (run 'cryswap check' for details)", summary)
				}
			}

			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store != nil {
				defer store.Close()
			}

			runID := uuid.NewString()
			started := time.Now()
			summary, buildErr := pipeline.Build(cmd.Context(), cfg, logger, pipeline.Options{RunID: runID})
			if store != nil {
				run := historyRun(runID, summary, buildErr, cfg.Version, cfg.Source, started)
				if err := store.Record(context.WithoutCancel(cmd.Context()), run); err != nil {
					logging.WarnWithContext(logger, "failed to record build history", "history_record_failed",
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check history.path in the config"),
					)
				}
			}
			if buildErr != nil {
				logging.ErrorWithContext(logger, "build failed", "build_failed",
					logging.String(logging.FieldRunID, runID),
					logging.Error(buildErr),
				)
				return buildErr
			}

			if jsonOutput {
				return writeJSON(cmd, buildSummaryJSON(summary))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBuildSummary(summary))
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent workers (overrides config)")
	cmd.Flags().StringVar(&version, "version", "", "Version label for output file names (overrides config)")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip directory and ffmpeg checks")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the build summary as JSON")
	return cmd
}

func historyRun(runID string, summary pipeline.Summary, buildErr error, version, source string, started time.Time) history.Run {
	run := history.Run{
		RunID:     runID,
		Status:    history.StatusSucceeded,
		Version:   version,
		Source:    source,
		StartedAt: started,
		Duration:  time.Since(started),
	}
	if buildErr != nil {
		run.Status = history.StatusFailed
		run.Error = buildErr.Error()
		return run
	}
	run.Duration = summary.Duration
	run.Records = summary.Records
	run.Forms = summary.Forms
	run.Added = len(summary.Report.AddedSoundFiles)
	run.Replaced = len(summary.Report.ReplacedSoundFiles)
	run.Unchanged = len(summary.Report.UnchangedSoundFiles)
	run.ChangedSpecies = len(summary.Report.ChangedSpeciesFiles)
	run.Tiers = summary.Tiers
	run.ResourcePack = summary.ResourcePack
	run.DataPack = summary.DataPack
	run.ReportPath = summary.ReportPath
	return run
}

func renderBuildSummary(s pipeline.Summary) string {
	rows := [][2]string{
		{"Run", s.RunID},
		{"Species records", strconv.Itoa(s.Records)},
		{"Forms", strconv.Itoa(s.Forms)},
		{"Changed species", strconv.Itoa(len(s.Report.ChangedSpeciesFiles))},
		{"Added sounds", strconv.Itoa(len(s.Report.AddedSoundFiles))},
		{"Replaced sounds", strconv.Itoa(len(s.Report.ReplacedSoundFiles))},
		{"Unchanged sounds", strconv.Itoa(len(s.Report.UnchangedSoundFiles))},
		{"Deep copies", strconv.Itoa(s.DeepCopies)},
		{"Sound index entries", strconv.Itoa(s.RegistryLength)},
	}
	for _, tier := range slices.Sorted(maps.Keys(s.Tiers)) {
		rows = append(rows, [2]string{"Resolved " + tier, strconv.Itoa(s.Tiers[tier])})
	}
	rows = append(rows,
		[2]string{"Resource pack", s.ResourcePack},
		[2]string{"Data pack", s.DataPack},
		[2]string{"Report", s.ReportPath},
		[2]string{"Duration", s.Duration.Round(time.Millisecond).String()},
	)
	return renderFields("Build", rows)
}
