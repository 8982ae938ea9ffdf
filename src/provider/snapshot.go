package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// SnapshotProvider serves a fixed BuildReport loaded from a JSON file. Used
// by the one-shot CLI commands and in tests; the report never changes after
// load.
type SnapshotProvider struct {
	report *BuildReport
}

// NewSnapshotProvider wraps an already-materialized report.
func NewSnapshotProvider(report *BuildReport) *SnapshotProvider {
	return &SnapshotProvider{report: report}
}

// LoadSnapshot reads a BuildReport from a JSON file.
func LoadSnapshot(path string) (*SnapshotProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var report BuildReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	return &SnapshotProvider{report: &report}, nil
}

// Report implements BuildStatusProvider. Targets are accepted for interface
// symmetry but a snapshot covers whatever selection it was captured with.
func (p *SnapshotProvider) Report(ctx context.Context, targets []string) (*BuildReport, error) {
	if p.report == nil {
		return nil, ErrBuildUnavailable
	}
	return p.report, nil
}
