package respond

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"dunemcp/src/contracts"
	"dunemcp/src/ranking"
	"dunemcp/src/request"
	"dunemcp/src/tokens"
)

// syntheticDiagnostics builds n diagnostics with evenly distributed
// severities and short messages, in a deterministic order.
func syntheticDiagnostics(n int) []contracts.Diagnostic {
	diags := make([]contracts.Diagnostic, 0, n)
	for i := 0; i < n; i++ {
		sev := contracts.SeverityError
		if i%2 == 1 {
			sev = contracts.SeverityWarning
		}
		diags = append(diags, contracts.Diagnostic{
			Severity: sev,
			File:     fmt.Sprintf("src/mod%d.ml", i),
			Line:     i + 1,
			Column:   3,
			Message:  fmt.Sprintf("Unbound value x%d", i),
		})
	}
	return diags
}

func defaultRequest(pageSize, page int) *request.Request {
	return &request.Request{
		MaxDiagnostics: pageSize,
		Page:           page,
		Severity:       contracts.FilterAll,
	}
}

func TestTokenCeiling(t *testing.T) {
	est := tokens.NewEstimator()

	tests := []struct {
		name  string
		diags []contracts.Diagnostic
	}{
		{"empty", nil},
		{"thousands of diagnostics", syntheticDiagnostics(5000)},
		{"very long messages", func() []contracts.Diagnostic {
			diags := syntheticDiagnostics(200)
			for i := range diags {
				diags[i].Message = strings.Repeat("this expression has type int but was expected of type string ", 200)
			}
			return diags
		}()},
		{"deeply nested paths", func() []contracts.Diagnostic {
			diags := syntheticDiagnostics(500)
			for i := range diags {
				diags[i].File = strings.Repeat("deeply/nested/", 12) + "leaf.ml"
			}
			return diags
		}()},
		{"unicode messages", func() []contracts.Diagnostic {
			diags := syntheticDiagnostics(300)
			for i := range diags {
				diags[i].Message = strings.Repeat("líne überflow ← →", 50)
			}
			return diags
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, pageSize := range []int{1, 50, 1000} {
				resp := Assemble(est, contracts.StatusFailed, nil, tt.diags, defaultRequest(pageSize, 0), DefaultBudget())
				if resp.TokenCount > TokenBudget {
					t.Errorf("page size %d: token_count %d exceeds ceiling %d", pageSize, resp.TokenCount, TokenBudget)
				}
			}
		})
	}
}

func TestPaginationEndToEnd(t *testing.T) {
	// 150 diagnostics, page size 50: three full pages.
	est := tokens.NewEstimator()
	diags := syntheticDiagnostics(150)

	page0 := Assemble(est, contracts.StatusFailed, nil, diags, defaultRequest(50, 0), DefaultBudget())
	if len(page0.Diagnostics) != 50 {
		t.Fatalf("page 0 returned %d diagnostics, want 50", len(page0.Diagnostics))
	}
	if !page0.Truncated {
		t.Error("page 0 should be truncated")
	}
	if page0.TruncationReason == nil || !strings.Contains(*page0.TruncationReason, "paginated") {
		t.Errorf("page 0 truncation_reason = %v, want pagination", page0.TruncationReason)
	}
	if page0.NextCursor == nil || *page0.NextCursor != "1" {
		t.Errorf("page 0 next_cursor = %v, want \"1\"", page0.NextCursor)
	}
	if page0.Summary.TotalDiagnostics != 150 {
		t.Errorf("total_diagnostics = %d, want 150", page0.Summary.TotalDiagnostics)
	}
	if page0.Summary.ErrorCount != 75 || page0.Summary.WarningCount != 75 {
		t.Errorf("counts = (%d, %d), want (75, 75)", page0.Summary.ErrorCount, page0.Summary.WarningCount)
	}

	page2 := Assemble(est, contracts.StatusFailed, nil, diags, defaultRequest(50, 2), DefaultBudget())
	if len(page2.Diagnostics) != 50 {
		t.Fatalf("page 2 returned %d diagnostics, want 50", len(page2.Diagnostics))
	}
	if page2.Truncated {
		t.Error("page 2 should not be truncated")
	}
	if page2.NextCursor != nil {
		t.Errorf("page 2 next_cursor = %q, want nil", *page2.NextCursor)
	}
}

func TestPaginationCompleteness(t *testing.T) {
	// Walking pages via next_cursor must yield every filtered diagnostic
	// exactly once, in prioritized order.
	est := tokens.NewEstimator()
	diags := syntheticDiagnostics(137)
	want := ranking.Prioritize(diags)

	var collected []contracts.Diagnostic
	for page := 0; ; page++ {
		resp := Assemble(est, contracts.StatusFailed, nil, diags, defaultRequest(20, page), DefaultBudget())
		collected = append(collected, resp.Diagnostics...)
		if resp.NextCursor == nil {
			break
		}
		if *resp.NextCursor != fmt.Sprintf("%d", page+1) {
			t.Fatalf("page %d: next_cursor = %q, want %d", page, *resp.NextCursor, page+1)
		}
		if page > 20 {
			t.Fatal("cursor never terminated")
		}
	}

	if len(collected) != len(want) {
		t.Fatalf("collected %d diagnostics, want %d", len(collected), len(want))
	}
	for i := range want {
		if collected[i] != want[i] {
			t.Fatalf("collected[%d] = %+v, want %+v", i, collected[i], want[i])
		}
	}
}

func TestTokenLimitTruncation(t *testing.T) {
	est := tokens.NewEstimator()
	diags := syntheticDiagnostics(100)

	// A budget that only admits a handful of diagnostics per page.
	tight := Budget{Limit: 1300, MetadataReserve: 1000, SafetyFactor: 1.4}

	resp := Assemble(est, contracts.StatusFailed, nil, diags, defaultRequest(50, 0), tight)

	if len(resp.Diagnostics) == 0 {
		t.Fatal("tight budget returned no diagnostics at all")
	}
	if len(resp.Diagnostics) >= 50 {
		t.Fatalf("tight budget returned a full page of %d", len(resp.Diagnostics))
	}
	if !resp.Truncated {
		t.Error("tight budget response should be truncated")
	}
	if resp.TruncationReason == nil || !strings.Contains(*resp.TruncationReason, "token limit") {
		t.Errorf("truncation_reason = %v, want token limit", resp.TruncationReason)
	}
	if resp.TokenCount > tight.Limit {
		t.Errorf("token_count %d exceeds tight limit %d", resp.TokenCount, tight.Limit)
	}
}

func TestPageBeyondEnd(t *testing.T) {
	est := tokens.NewEstimator()
	diags := syntheticDiagnostics(10)

	resp := Assemble(est, contracts.StatusSuccessWithWarnings, nil, diags, defaultRequest(50, 7), DefaultBudget())

	if len(resp.Diagnostics) != 0 {
		t.Errorf("page beyond end returned %d diagnostics, want 0", len(resp.Diagnostics))
	}
	if resp.Truncated {
		t.Error("page beyond end should not be truncated")
	}
	if resp.NextCursor != nil {
		t.Errorf("page beyond end next_cursor = %q, want nil", *resp.NextCursor)
	}
	if resp.Summary.TotalDiagnostics != 10 {
		t.Errorf("total_diagnostics = %d, want 10", resp.Summary.TotalDiagnostics)
	}
}

func TestPageIndexOverflow(t *testing.T) {
	// Page indexes large enough to overflow start = page * pageSize must get
	// the empty past-the-end page, not a panic or a wrapped-around re-serve
	// of page 0. All of these pass validation: page has no upper bound.
	est := tokens.NewEstimator()
	diags := syntheticDiagnostics(10)

	tests := []struct {
		name     string
		pageSize int
		page     int
	}{
		{"overflows negative", 2, 1 << 62},
		{"wraps to zero", 4, 1 << 62},
		{"max int", 1, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fmt.Sprintf(`{"max_diagnostics": %d, "page": %d}`, tt.pageSize, tt.page)
			req, err := request.Validate([]byte(raw))
			if err != nil {
				t.Fatalf("Validate rejected %s: %v", raw, err)
			}

			resp := Assemble(est, contracts.StatusFailed, nil, diags, req, DefaultBudget())

			if len(resp.Diagnostics) != 0 {
				t.Errorf("returned %d diagnostics, want empty past-the-end page", len(resp.Diagnostics))
			}
			if resp.Truncated {
				t.Error("past-the-end page should not be truncated")
			}
			if resp.NextCursor != nil {
				t.Errorf("next_cursor = %q, want nil", *resp.NextCursor)
			}
			if resp.Summary.TotalDiagnostics != 10 {
				t.Errorf("total_diagnostics = %d, want 10", resp.Summary.TotalDiagnostics)
			}
		})
	}
}

func TestAssemblePassThrough(t *testing.T) {
	est := tokens.NewEstimator()
	summary := &contracts.BuildSummary{Completed: 12, Remaining: 3, Failed: 1}

	resp := Assemble(est, contracts.StatusBuilding, summary, syntheticDiagnostics(4), defaultRequest(50, 0), DefaultBudget())

	if resp.Status != "building" {
		t.Errorf("status = %q, want building", resp.Status)
	}
	if resp.Summary.BuildSummary == nil || resp.Summary.BuildSummary.Completed != 12 {
		t.Errorf("build_summary not passed through: %+v", resp.Summary.BuildSummary)
	}
	if resp.Summary.ReturnedDiagnostics != 4 {
		t.Errorf("returned_diagnostics = %d, want 4", resp.Summary.ReturnedDiagnostics)
	}
}

func TestAssembleFiltersBeforeCounting(t *testing.T) {
	est := tokens.NewEstimator()
	diags := syntheticDiagnostics(20) // 10 errors, 10 warnings

	req := defaultRequest(50, 0)
	req.Severity = contracts.FilterError

	resp := Assemble(est, contracts.StatusFailed, nil, diags, req, DefaultBudget())

	if resp.Summary.TotalDiagnostics != 10 {
		t.Errorf("total_diagnostics = %d, want 10 (filtered set)", resp.Summary.TotalDiagnostics)
	}
	if resp.Summary.ErrorCount != 10 || resp.Summary.WarningCount != 0 {
		t.Errorf("counts = (%d, %d), want (10, 0)", resp.Summary.ErrorCount, resp.Summary.WarningCount)
	}
	for i, d := range resp.Diagnostics {
		if d.Severity != contracts.SeverityError {
			t.Fatalf("diagnostics[%d] has severity %s after error filter", i, d.Severity)
		}
	}
}
