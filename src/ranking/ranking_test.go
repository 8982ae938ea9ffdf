package ranking

import (
	"fmt"
	"testing"

	"dunemcp/src/contracts"
)

func diag(sev contracts.Severity, file, msg string) contracts.Diagnostic {
	return contracts.Diagnostic{Severity: sev, File: file, Line: 1, Column: 1, Message: msg}
}

func TestFilterSeverity(t *testing.T) {
	diags := []contracts.Diagnostic{
		diag(contracts.SeverityError, "a.ml", "e1"),
		diag(contracts.SeverityWarning, "b.ml", "w1"),
		diag(contracts.SeverityError, "c.ml", "e2"),
	}

	tests := []struct {
		name     string
		filter   contracts.SeverityFilter
		wantMsgs []string
	}{
		{"all", contracts.FilterAll, []string{"e1", "w1", "e2"}},
		{"errors only", contracts.FilterError, []string{"e1", "e2"}},
		{"warnings only", contracts.FilterWarning, []string{"w1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(diags, tt.filter, "")
			if len(got) != len(tt.wantMsgs) {
				t.Fatalf("Filter returned %d diagnostics, want %d", len(got), len(tt.wantMsgs))
			}
			for i, msg := range tt.wantMsgs {
				if got[i].Message != msg {
					t.Errorf("got[%d].Message = %q, want %q", i, got[i].Message, msg)
				}
			}
		})
	}
}

func TestFilterPattern(t *testing.T) {
	diags := []contracts.Diagnostic{
		diag(contracts.SeverityError, "src/main.ml", "e1"),
		diag(contracts.SeverityError, "src/util.mli", "e2"),
		diag(contracts.SeverityWarning, "test/main.ml", "w1"),
	}

	tests := []struct {
		name     string
		pattern  string
		wantMsgs []string
	}{
		{"no pattern is identity", "", []string{"e1", "e2", "w1"}},
		{"extension glob", "*.ml", []string{"e1", "w1"}},
		{"rooted recursive glob", "src/**/*.ml", []string{"e1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(diags, contracts.FilterAll, tt.pattern)
			if len(got) != len(tt.wantMsgs) {
				t.Fatalf("Filter returned %d diagnostics, want %d", len(got), len(tt.wantMsgs))
			}
			for i, msg := range tt.wantMsgs {
				if got[i].Message != msg {
					t.Errorf("got[%d].Message = %q, want %q", i, got[i].Message, msg)
				}
			}
		})
	}
}

func TestPrioritizeStable(t *testing.T) {
	// Interleaved severities; relative order within each class must survive.
	var diags []contracts.Diagnostic
	for i := 0; i < 10; i++ {
		sev := contracts.SeverityWarning
		if i%2 == 0 {
			sev = contracts.SeverityError
		}
		diags = append(diags, diag(sev, "a.ml", fmt.Sprintf("msg-%d", i)))
	}

	got := Prioritize(diags)

	if len(got) != len(diags) {
		t.Fatalf("Prioritize returned %d diagnostics, want %d", len(got), len(diags))
	}

	// All errors first.
	seenWarning := false
	for i, d := range got {
		if d.Severity == contracts.SeverityWarning {
			seenWarning = true
		} else if seenWarning {
			t.Fatalf("error at position %d after a warning", i)
		}
	}

	// Input order preserved within each class.
	wantErrors := []string{"msg-0", "msg-2", "msg-4", "msg-6", "msg-8"}
	wantWarnings := []string{"msg-1", "msg-3", "msg-5", "msg-7", "msg-9"}
	for i, msg := range wantErrors {
		if got[i].Message != msg {
			t.Errorf("errors[%d] = %q, want %q", i, got[i].Message, msg)
		}
	}
	for i, msg := range wantWarnings {
		if got[5+i].Message != msg {
			t.Errorf("warnings[%d] = %q, want %q", i, got[5+i].Message, msg)
		}
	}
}

func TestPrioritizeEmpty(t *testing.T) {
	if got := Prioritize(nil); len(got) != 0 {
		t.Errorf("Prioritize(nil) returned %d diagnostics, want 0", len(got))
	}
}

func TestCounts(t *testing.T) {
	diags := []contracts.Diagnostic{
		diag(contracts.SeverityError, "a.ml", "e1"),
		diag(contracts.SeverityWarning, "b.ml", "w1"),
		diag(contracts.SeverityWarning, "c.ml", "w2"),
	}

	errors, warnings := Counts(diags)
	if errors != 1 || warnings != 2 {
		t.Errorf("Counts = (%d, %d), want (1, 2)", errors, warnings)
	}
}
