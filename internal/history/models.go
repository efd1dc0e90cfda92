package history

import "time"

// Status records how a build ended.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded build.
type Run struct {
	RunID          string
	Status         Status
	Version        string
	Source         string
	StartedAt      time.Time
	Duration       time.Duration
	Records        int
	Forms          int
	Added          int
	Replaced       int
	Unchanged      int
	ChangedSpecies int
	// Tiers counts resolved forms per "pool/tier".
	Tiers        map[string]int
	ResourcePack string
	DataPack     string
	ReportPath   string
	Error        string
}
