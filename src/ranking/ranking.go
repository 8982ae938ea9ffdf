// Package ranking provides the shared filtering and prioritization logic for
// diagnostics. Both the MCP server and the TUI consume this package so a
// client always sees the same ordering for the same build.
package ranking

import (
	"dunemcp/src/contracts"
	"dunemcp/src/globmatch"
)

// Filter retains diagnostics that pass the severity filter and, when pattern
// is non-empty, whose file matches the glob. Order-preserving, single linear
// pass, one output slice.
func Filter(diags []contracts.Diagnostic, severity contracts.SeverityFilter, pattern string) []contracts.Diagnostic {
	filtered := make([]contracts.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if !severity.Matches(d.Severity) {
			continue
		}
		if pattern != "" && !globmatch.Match(pattern, d.File) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// Prioritize stable-partitions diagnostics so every error precedes every
// warning. Within each severity class the input order is preserved, which is
// what makes pagination reproducible across repeated identical queries.
func Prioritize(diags []contracts.Diagnostic) []contracts.Diagnostic {
	ordered := make([]contracts.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == contracts.SeverityError {
			ordered = append(ordered, d)
		}
	}
	for _, d := range diags {
		if d.Severity != contracts.SeverityError {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

// Counts tallies errors and warnings over a diagnostic set.
func Counts(diags []contracts.Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		if d.Severity == contracts.SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}
