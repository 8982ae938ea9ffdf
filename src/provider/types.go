package provider

import (
	"time"

	"dunemcp/src/contracts"
)

// BuildReport is one snapshot of the build layer's view: overall status, the
// full raw diagnostic list, and optional progress counters. The response
// pipeline owns the diagnostics for the duration of one request and never
// mutates them.
type BuildReport struct {
	// SessionID identifies the build session the report came from. Used by
	// the drill-down tool; empty for one-shot snapshots.
	SessionID string `json:"session_id,omitempty"`
	// Targets is the build-target selection the report covers.
	Targets     []string                `json:"targets,omitempty"`
	Status      contracts.BuildStatus   `json:"status"`
	Diagnostics []contracts.Diagnostic  `json:"diagnostics"`
	Summary     *contracts.BuildSummary `json:"summary,omitempty"`
	// Timestamp is when the build layer produced the report.
	Timestamp time.Time `json:"timestamp,omitempty"`
}
