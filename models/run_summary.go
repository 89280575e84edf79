package models

// PlatformCounts holds per-platform outcome counts for a single run.
type PlatformCounts struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// FailedUpload names one file that failed on one platform, with the reason
// string a human needs to decide whether a rerun is worthwhile.
type FailedUpload struct {
	Filename string `json:"filename"`
	Platform string `json:"platform"`
	Reason   string `json:"reason"`
}

// RunSummary is written at the end of every orchestration run, including
// partially failed ones.
type RunSummary struct {
	RunID      string                    `json:"runId"`
	StartedUTC string                    `json:"startedUtc"`
	EndedUTC   string                    `json:"endedUtc"`
	DryRun     bool                      `json:"dryRun"`
	Total      int                       `json:"total"`
	Platforms  map[string]PlatformCounts `json:"platforms"`
	Failures   []FailedUpload            `json:"failures,omitempty"`
}
