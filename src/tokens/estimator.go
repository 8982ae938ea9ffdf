// Package tokens estimates the token cost of diagnostic text for a
// downstream LLM consumer. Estimates are deterministic: the same text always
// yields the same count, whether or not the cache is hit, so truncation
// decisions built on them are reproducible.
package tokens

import (
	"strconv"
	"strings"
	"sync"

	"dunemcp/src/contracts"
)

// cacheCapacity bounds the memo cache. On reaching capacity the whole cache
// is cleared rather than evicted entry by entry: diagnostic text repeats
// heavily within one build and rarely across builds, so incremental LRU
// bookkeeping buys nothing.
const cacheCapacity = 2048

// diagnosticOverhead is the structural cost of one serialized diagnostic:
// the five field names (severity, file, line, column, message), quotes,
// colons, commas, and braces. Calibrated once from the fixed field-name
// lengths of the wire format.
const diagnosticOverhead = 15

// Estimator estimates token counts for diagnostic text, memoizing results
// in a bounded cache. Safe for concurrent use; construct one per process and
// share it.
type Estimator struct {
	mu    sync.RWMutex
	cache map[string]int
}

// NewEstimator creates an Estimator with an empty cache.
func NewEstimator() *Estimator {
	return &Estimator{
		cache: make(map[string]int),
	}
}

// Estimate returns the estimated token count for text. Never returns less
// than 1: every emitted field costs at least one unit.
func (e *Estimator) Estimate(text string) int {
	if text == "" {
		return 1
	}

	e.mu.RLock()
	n, ok := e.cache[text]
	e.mu.RUnlock()
	if ok {
		return n
	}

	n = estimateText(text)

	e.mu.Lock()
	if len(e.cache) >= cacheCapacity {
		e.cache = make(map[string]int)
	}
	e.cache[text] = n
	e.mu.Unlock()

	return n
}

// EstimateDiagnostic returns the estimated cost of one diagnostic in its
// serialized form: the text fields, the numeric fields scaled by digit
// count, and the fixed structural overhead. The overhead is not cached per
// diagnostic; it is a constant of the wire format.
func (e *Estimator) EstimateDiagnostic(d contracts.Diagnostic) int {
	total := e.Estimate(string(d.Severity))
	total += e.Estimate(d.File)
	total += e.Estimate(d.Message)
	total += numericCost(d.Line)
	total += numericCost(d.Column)
	total += diagnosticOverhead
	return total
}

// CacheSize reports the number of memoized entries. Exposed for tests.
func (e *Estimator) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// estimateText computes the uncached estimate for non-empty text.
func estimateText(text string) int {
	// Whole-text vocabulary hit: single known term.
	if cost, ok := vocabulary[text]; ok {
		return cost
	}

	total := 0
	for _, word := range strings.Fields(text) {
		total += wordCost(word)
	}

	// Multi-byte sequences inflate tokenization; charge a quarter unit per
	// non-ASCII byte.
	total += nonASCIICount(text) / 4

	if total < 1 {
		return 1
	}
	return total
}

// wordCost estimates one whitespace-delimited word.
func wordCost(word string) int {
	if cost, ok := vocabulary[word]; ok {
		return cost
	}

	if len(word) <= 2 {
		return 1
	}

	// Paths and dotted names split into their segments.
	if strings.ContainsAny(word, "./") {
		total := 0
		for _, seg := range strings.FieldsFunc(word, func(r rune) bool {
			return r == '.' || r == '/'
		}) {
			total += segmentCost(seg)
		}
		if total < 1 {
			return 1
		}
		return total
	}

	return lengthCost(len(word))
}

// segmentCost estimates one path or dotted-name segment.
func segmentCost(seg string) int {
	if cost, ok := vocabulary[seg]; ok {
		return cost
	}
	if len(seg) <= 2 {
		return 1
	}
	return lengthCost(len(seg))
}

// lengthCost maps a word length to a token count: ceil(len/6) up to 12
// characters, then sub-linear growth so pathological long tokens do not
// blow up the estimate.
func lengthCost(n int) int {
	if n <= 12 {
		return (n + 5) / 6
	}
	return 2 + (n-12+9)/10
}

// numericCost estimates a serialized integer field by digit count.
func numericCost(n int) int {
	digits := len(strconv.Itoa(n))
	return 1 + digits/4
}

func nonASCIICount(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			count++
		}
	}
	return count
}
