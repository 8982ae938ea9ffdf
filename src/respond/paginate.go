package respond

import (
	"fmt"
	"math"
	"strconv"

	"dunemcp/src/contracts"
	"dunemcp/src/tokens"
)

// Truncation reasons distinguish a page that ended because the token budget
// ran out from one that ended because the page was full.
const (
	reasonTokenLimit = "token limit"
	reasonPagination = "paginated results"
)

// PageResult is the outcome of one budget walk over the prioritized list.
type PageResult struct {
	Diagnostics      []contracts.Diagnostic
	Truncated        bool
	TruncationReason string
	// NextCursor encodes the next page index, or "" when no further page
	// exists.
	NextCursor string
	// TokensUsed is the charged cost of the included diagnostics, safety
	// factor applied, excluding the metadata reserve.
	TokensUsed int
}

// AssemblePage walks the prioritized, filtered diagnostics starting at this
// page's window and admits them one at a time, charging
// ceil(estimate * SafetyFactor) against the budget minus the metadata
// reserve. It stops at the first of: budget exhausted, page full, or input
// exhausted. The emitted page can never push the response past the ceiling.
func AssemblePage(est *tokens.Estimator, prioritized []contracts.Diagnostic, pageSize, pageIndex int, b Budget) PageResult {
	available := b.Limit - b.MetadataReserve

	// A huge page index would overflow the start multiplication before the
	// past-the-end check could catch it, so bound it by division first.
	if pageIndex > len(prioritized)/pageSize {
		return PageResult{Diagnostics: []contracts.Diagnostic{}}
	}

	start := pageIndex * pageSize
	if start >= len(prioritized) {
		// Past the end. Empty page, nothing truncated, no continuation.
		return PageResult{Diagnostics: []contracts.Diagnostic{}}
	}

	end := start + pageSize
	if end > len(prioritized) {
		end = len(prioritized)
	}

	page := make([]contracts.Diagnostic, 0, end-start)
	used := 0
	overBudget := false

	for _, d := range prioritized[start:end] {
		cost := int(math.Ceil(float64(est.EstimateDiagnostic(d)) * b.SafetyFactor))
		if used+cost > available {
			overBudget = true
			break
		}
		used += cost
		page = append(page, d)
	}

	result := PageResult{
		Diagnostics: page,
		TokensUsed:  used,
	}

	hasMore := len(prioritized) > start+pageSize
	if hasMore {
		result.NextCursor = strconv.Itoa(pageIndex + 1)
	}

	switch {
	case overBudget:
		result.Truncated = true
		result.TruncationReason = fmt.Sprintf(
			"%s: %d of %d diagnostics fit within %d tokens; retry with a smaller max_diagnostics for the rest of this page",
			reasonTokenLimit, len(page), end-start, b.Limit)
	case hasMore:
		result.Truncated = true
		result.TruncationReason = reasonPagination
	}

	return result
}
