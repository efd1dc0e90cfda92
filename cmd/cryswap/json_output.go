package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"cryswap/internal/history"
	"cryswap/internal/pipeline"
	"cryswap/internal/report"
	"cryswap/internal/resolve"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type buildJSON struct {
	RunID        string         `json:"run_id"`
	Version      string         `json:"version"`
	Source       string         `json:"source"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     string         `json:"duration"`
	Records      int            `json:"records"`
	Forms        int            `json:"forms"`
	Tiers        map[string]int `json:"tiers"`
	DeepCopies   int            `json:"deep_copies"`
	IndexEntries int            `json:"sound_index_entries"`
	ResourcePack string         `json:"resource_pack"`
	DataPack     string         `json:"data_pack"`
	ReportPath   string         `json:"report_path"`
	Report       report.Report  `json:"report"`
}

func buildSummaryJSON(s pipeline.Summary) buildJSON {
	tiers := s.Tiers
	if tiers == nil {
		tiers = map[string]int{}
	}
	return buildJSON{
		RunID:        s.RunID,
		Version:      s.Version,
		Source:       s.Source,
		StartedAt:    s.StartedAt.UTC(),
		Duration:     s.Duration.Round(time.Millisecond).String(),
		Records:      s.Records,
		Forms:        s.Forms,
		Tiers:        tiers,
		DeepCopies:   s.DeepCopies,
		IndexEntries: s.RegistryLength,
		ResourcePack: s.ResourcePack,
		DataPack:     s.DataPack,
		ReportPath:   s.ReportPath,
		Report:       s.Report,
	}
}

type runJSON struct {
	RunID          string         `json:"run_id"`
	Status         string         `json:"status"`
	Version        string         `json:"version,omitempty"`
	Source         string         `json:"source,omitempty"`
	StartedAt      time.Time      `json:"started_at"`
	Duration       string         `json:"duration"`
	Records        int            `json:"records"`
	Forms          int            `json:"forms"`
	Added          int            `json:"added"`
	Replaced       int            `json:"replaced"`
	Unchanged      int            `json:"unchanged"`
	ChangedSpecies int            `json:"changed_species"`
	Tiers          map[string]int `json:"tiers,omitempty"`
	ResourcePack   string         `json:"resource_pack,omitempty"`
	DataPack       string         `json:"data_pack,omitempty"`
	ReportPath     string         `json:"report_path,omitempty"`
	Error          string         `json:"error,omitempty"`
}

func historyRunJSON(run *history.Run) runJSON {
	return runJSON{
		RunID:          run.RunID,
		Status:         string(run.Status),
		Version:        run.Version,
		Source:         run.Source,
		StartedAt:      run.StartedAt.UTC(),
		Duration:       run.Duration.Round(time.Millisecond).String(),
		Records:        run.Records,
		Forms:          run.Forms,
		Added:          run.Added,
		Replaced:       run.Replaced,
		Unchanged:      run.Unchanged,
		ChangedSpecies: run.ChangedSpecies,
		Tiers:          run.Tiers,
		ResourcePack:   run.ResourcePack,
		DataPack:       run.DataPack,
		ReportPath:     run.ReportPath,
		Error:          run.Error,
	}
}

func historyRunsJSON(runs []*history.Run) []runJSON {
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, historyRunJSON(run))
	}
	return out
}

type matchJSON struct {
	Species string  `json:"species"`
	Form    string  `json:"form,omitempty"`
	Pool    string  `json:"pool"`
	Tier    string  `json:"tier"`
	Sound   string  `json:"sound"`
	Source  string  `json:"source"`
	Score   float64 `json:"score,omitempty"`
}

func resolveMatchJSON(key resolve.Key, match resolve.Match) matchJSON {
	return matchJSON{
		Species: key.Entity,
		Form:    key.Form,
		Pool:    match.Pool,
		Tier:    string(match.Tier),
		Sound:   match.Path,
		Source:  match.Source,
		Score:   match.Score,
	}
}
