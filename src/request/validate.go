// Package request parses and validates incoming diagnostic queries into a
// canonical, bounds-checked form. Invalid input never reaches the pipeline:
// validation either yields an immutable Request or a ValidationError naming
// the field, the offending value, and the violated constraint.
package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"dunemcp/src/contracts"
)

// Validated bounds and defaults for the wire request.
const (
	DefaultMaxDiagnostics = 50
	MinMaxDiagnostics     = 1
	MaxMaxDiagnostics     = 1000

	// MaxPatternLength and MaxPatternWildcards cap worst-case glob matching
	// cost before a match is ever attempted.
	MaxPatternLength    = 200
	MaxPatternWildcards = 10
)

// Request is a validated, canonical diagnostic query. Immutable once
// constructed.
type Request struct {
	// Targets is the build-target selection, passed through to the build
	// layer untouched.
	Targets []string
	// MaxDiagnostics is the page size, in [1, 1000].
	MaxDiagnostics int
	// Page is the zero-based page index.
	Page int
	// Severity selects which severities to retain.
	Severity contracts.SeverityFilter
	// FilePattern is the validated glob filter; empty means absent.
	FilePattern string
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field      string
	Value      any
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: got %v, %s", e.Field, e.Value, e.Constraint)
}

// wireRequest is the loosely-typed wire shape. Unrecognized fields are
// ignored for forward compatibility; pointer fields distinguish absent from
// zero-valued.
type wireRequest struct {
	Targets        []string `json:"targets"`
	MaxDiagnostics *int     `json:"max_diagnostics"`
	Page           *int     `json:"page"`
	SeverityFilter *string  `json:"severity_filter"`
	FilePattern    *string  `json:"file_pattern"`
}

// Validate parses raw JSON into a canonical Request. The top level must be
// an object; each recognized field is type- and range-checked.
func Validate(raw []byte) (*Request, error) {
	if strings.TrimSpace(string(raw)) == "null" {
		return nil, &ValidationError{
			Field:      "request",
			Value:      "null",
			Constraint: "must be a JSON object",
		}
	}

	var wire wireRequest
	if err := json.Unmarshal(raw, &wire); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			return nil, &ValidationError{
				Field:      typeErr.Field,
				Value:      typeErr.Value,
				Constraint: fmt.Sprintf("expected %s", typeErr.Type),
			}
		}
		return nil, &ValidationError{
			Field:      "request",
			Value:      strings.TrimSpace(string(raw)),
			Constraint: "must be a JSON object",
		}
	}

	req := &Request{
		Targets:        wire.Targets,
		MaxDiagnostics: DefaultMaxDiagnostics,
		Page:           0,
		Severity:       contracts.FilterAll,
	}

	if wire.MaxDiagnostics != nil {
		n := *wire.MaxDiagnostics
		if n < MinMaxDiagnostics || n > MaxMaxDiagnostics {
			return nil, &ValidationError{
				Field:      "max_diagnostics",
				Value:      n,
				Constraint: fmt.Sprintf("must be between %d and %d", MinMaxDiagnostics, MaxMaxDiagnostics),
			}
		}
		req.MaxDiagnostics = n
	}

	if wire.Page != nil {
		if *wire.Page < 0 {
			return nil, &ValidationError{
				Field:      "page",
				Value:      *wire.Page,
				Constraint: "must be >= 0",
			}
		}
		req.Page = *wire.Page
	}

	if wire.SeverityFilter != nil {
		filter, err := contracts.ParseSeverityFilter(*wire.SeverityFilter)
		if err != nil {
			return nil, &ValidationError{
				Field:      "severity_filter",
				Value:      *wire.SeverityFilter,
				Constraint: `allowed values are "error", "warning", "all"`,
			}
		}
		req.Severity = filter
	}

	if wire.FilePattern != nil {
		if err := validatePattern(*wire.FilePattern); err != nil {
			return nil, err
		}
		req.FilePattern = *wire.FilePattern
	}

	return req, nil
}

// ValidateArguments validates a decoded argument map, as delivered by the
// MCP layer, by round-tripping it through JSON.
func ValidateArguments(args map[string]any) (*Request, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, &ValidationError{
			Field:      "request",
			Value:      fmt.Sprintf("%T", args),
			Constraint: "must be a JSON object",
		}
	}
	return Validate(raw)
}

// validatePattern enforces the glob input caps. An explicitly empty pattern
// is rejected; absence is expressed by omitting the field.
func validatePattern(pattern string) error {
	if len(pattern) == 0 {
		return &ValidationError{
			Field:      "file_pattern",
			Value:      `""`,
			Constraint: "must not be empty; omit the field to match all files",
		}
	}
	if len(pattern) > MaxPatternLength {
		return &ValidationError{
			Field:      "file_pattern",
			Value:      fmt.Sprintf("%d chars", len(pattern)),
			Constraint: fmt.Sprintf("must be at most %d characters", MaxPatternLength),
		}
	}
	if n := strings.Count(pattern, "*"); n > MaxPatternWildcards {
		return &ValidationError{
			Field:      "file_pattern",
			Value:      fmt.Sprintf("%d wildcards", n),
			Constraint: fmt.Sprintf("must contain at most %d '*' wildcards", MaxPatternWildcards),
		}
	}
	return nil
}
