// Package contracts defines the shared data types exchanged between the
// build-status layer, the response pipeline, and the MCP server.
package contracts

import (
	"fmt"
	"strings"
)

// Severity is the level of a compiler diagnostic. The dune layer only ever
// emits errors and warnings; there is no third variant.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SeverityFilter selects which severities a query retains.
type SeverityFilter int

const (
	FilterAll SeverityFilter = iota
	FilterError
	FilterWarning
)

// ParseSeverityFilter parses a wire severity filter keyword.
// Matching is case-insensitive over exactly three keywords; anything else
// is rejected with an error naming the allowed values.
func ParseSeverityFilter(s string) (SeverityFilter, error) {
	switch {
	case strings.EqualFold(s, "all"):
		return FilterAll, nil
	case strings.EqualFold(s, "error"):
		return FilterError, nil
	case strings.EqualFold(s, "warning"):
		return FilterWarning, nil
	}
	return FilterAll, fmt.Errorf("unknown severity filter %q: allowed values are \"error\", \"warning\", \"all\"", s)
}

// String returns the canonical wire keyword for the filter.
func (f SeverityFilter) String() string {
	switch f {
	case FilterError:
		return "error"
	case FilterWarning:
		return "warning"
	default:
		return "all"
	}
}

// Matches reports whether a diagnostic severity passes the filter.
func (f SeverityFilter) Matches(sev Severity) bool {
	switch f {
	case FilterError:
		return sev == SeverityError
	case FilterWarning:
		return sev == SeverityWarning
	default:
		return true
	}
}

// Diagnostic is one compiler finding. Diagnostics are immutable value
// objects produced by the build layer; the pipeline filters, copies, and
// reorders them but never mutates one.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	// File is the path relative to the project root.
	File string `json:"file"`
	// Line is 1-based. Column may be 0 when the compiler does not know it,
	// but is never negative.
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// BuildStatus is the overall state of the build that produced a diagnostic
// set. It is supplied by the build layer, not computed by the pipeline.
type BuildStatus string

const (
	StatusSuccess             BuildStatus = "success"
	StatusSuccessWithWarnings BuildStatus = "success_with_warnings"
	StatusFailed              BuildStatus = "failed"
	StatusBuilding            BuildStatus = "building"
)

// BuildSummary carries build-layer progress counters, passed through to the
// response untouched.
type BuildSummary struct {
	Completed int `json:"completed"`
	Remaining int `json:"remaining"`
	Failed    int `json:"failed"`
}
