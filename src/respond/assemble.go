package respond

import (
	"dunemcp/src/contracts"
	"dunemcp/src/ranking"
	"dunemcp/src/request"
	"dunemcp/src/tokens"
)

// Response is the wire-shaped result of one diagnostic query.
type Response struct {
	// SessionID identifies the build session the diagnostics came from, for
	// get_diagnostic_details drill-down. Omitted for one-shot snapshots,
	// which have no session.
	SessionID   string                 `json:"session_id,omitempty"`
	Status      string                 `json:"status"`
	Diagnostics []contracts.Diagnostic `json:"diagnostics"`
	Truncated   bool                   `json:"truncated"`
	// TruncationReason is null unless Truncated.
	TruncationReason *string `json:"truncation_reason"`
	// NextCursor is null when no further page exists.
	NextCursor *string `json:"next_cursor"`
	TokenCount int     `json:"token_count"`
	Summary    Summary `json:"summary"`
}

// Summary aggregates counts over the filtered set (not just this page),
// plus the page's own size and the pass-through build counters.
type Summary struct {
	TotalDiagnostics    int                     `json:"total_diagnostics"`
	ReturnedDiagnostics int                     `json:"returned_diagnostics"`
	ErrorCount          int                     `json:"error_count"`
	WarningCount        int                     `json:"warning_count"`
	BuildSummary        *contracts.BuildSummary `json:"build_summary"`
}

// Assemble runs filter → prioritize → budget walk over raw diagnostics and
// builds the final Response. Status and buildSummary come from the build
// layer and are passed through untouched. No failure mode: given a validated
// request this is pure construction.
func Assemble(est *tokens.Estimator, status contracts.BuildStatus, buildSummary *contracts.BuildSummary, raw []contracts.Diagnostic, req *request.Request, b Budget) Response {
	filtered := ranking.Filter(raw, req.Severity, req.FilePattern)
	prioritized := ranking.Prioritize(filtered)
	errors, warnings := ranking.Counts(filtered)

	page := AssemblePage(est, prioritized, req.MaxDiagnostics, req.Page, b)

	resp := Response{
		Status:      string(status),
		Diagnostics: page.Diagnostics,
		Truncated:   page.Truncated,
		// The metadata reserve covers the non-diagnostic fields, so the
		// total can never exceed b.Limit.
		TokenCount: page.TokensUsed + b.MetadataReserve,
		Summary: Summary{
			TotalDiagnostics:    len(filtered),
			ReturnedDiagnostics: len(page.Diagnostics),
			ErrorCount:          errors,
			WarningCount:        warnings,
			BuildSummary:        buildSummary,
		},
	}

	if page.TruncationReason != "" {
		reason := page.TruncationReason
		resp.TruncationReason = &reason
	}
	if page.NextCursor != "" {
		cursor := page.NextCursor
		resp.NextCursor = &cursor
	}

	return resp
}
