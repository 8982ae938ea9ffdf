// Package provider defines the boundary to the build-status layer: the
// component that actually talks to dune and owns toolchain setup. Everything
// behind this interface is external to the response pipeline.
package provider

import "context"

// BuildStatusProvider supplies the raw material for one diagnostic query.
type BuildStatusProvider interface {
	// Report returns the current build report for a target selection.
	// Targets are passed through to the build layer; an empty selection
	// means the default targets.
	Report(ctx context.Context, targets []string) (*BuildReport, error)
}
