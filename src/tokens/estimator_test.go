package tokens

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"dunemcp/src/contracts"
)

func TestEstimateEmptyString(t *testing.T) {
	e := NewEstimator()
	if got := e.Estimate(""); got != 1 {
		t.Errorf("Estimate(\"\") = %d, want 1", got)
	}
}

func TestEstimateVocabulary(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		text string
		want int
	}{
		{"Error", 1},
		{"Unbound", 2},
		{"module", 1},
		{".mli", 3},
		{"mismatch", 3},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := e.Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateHeuristics(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"short word", "ab", 1},
		{"six chars", "foobar", 1},
		{"seven chars", "foobars", 2},
		{"twelve chars", "abcdefghijkl", 2},
		{"path splits on separators", "a/b", 2},
		{"known words sum", "Unbound module", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateLongWordsSubLinear(t *testing.T) {
	e := NewEstimator()

	// Cost per character must shrink as words grow.
	short := e.Estimate(strings.Repeat("x", 12))
	long := e.Estimate(strings.Repeat("x", 120))

	if long >= short*10 {
		t.Errorf("long-word estimate grew linearly: 12 chars = %d, 120 chars = %d", short, long)
	}
}

func TestEstimateNonASCIIOverhead(t *testing.T) {
	e := NewEstimator()

	ascii := e.Estimate(strings.Repeat("exampleword ", 4))
	accented := e.Estimate(strings.Repeat("éxamplewörd ", 4))

	if accented <= ascii {
		t.Errorf("non-ASCII text estimated at %d, want more than ASCII %d", accented, ascii)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	e := NewEstimator()
	text := "Error: Unbound module Foo in src/main.ml"

	first := e.Estimate(text)
	second := e.Estimate(text)
	if first != second {
		t.Errorf("repeated Estimate differs: %d then %d", first, second)
	}

	// A fresh estimator (cold cache) must agree too.
	if got := NewEstimator().Estimate(text); got != first {
		t.Errorf("cold-cache Estimate = %d, cached = %d", got, first)
	}
}

func TestEstimateCacheCleared(t *testing.T) {
	e := NewEstimator()

	for i := 0; i < cacheCapacity*2; i++ {
		e.Estimate(fmt.Sprintf("unique-diagnostic-text-%d", i))
	}

	if size := e.CacheSize(); size > cacheCapacity {
		t.Errorf("cache size %d exceeds capacity %d", size, cacheCapacity)
	}
}

func TestEstimateConcurrent(t *testing.T) {
	e := NewEstimator()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				e.Estimate(fmt.Sprintf("worker-%d-text-%d", n, j%50))
			}
		}(i)
	}
	wg.Wait()
}

func TestEstimateDiagnostic(t *testing.T) {
	e := NewEstimator()

	d := contracts.Diagnostic{
		Severity: contracts.SeverityError,
		File:     "src/main.ml",
		Line:     42,
		Column:   7,
		Message:  "Unbound module Foo",
	}

	got := e.EstimateDiagnostic(d)

	// Must cover text estimates plus the structural overhead.
	textOnly := e.Estimate(string(d.Severity)) + e.Estimate(d.File) + e.Estimate(d.Message)
	if got <= textOnly {
		t.Errorf("EstimateDiagnostic = %d, want more than text fields alone (%d)", got, textOnly)
	}

	if again := e.EstimateDiagnostic(d); again != got {
		t.Errorf("EstimateDiagnostic not deterministic: %d then %d", got, again)
	}
}
