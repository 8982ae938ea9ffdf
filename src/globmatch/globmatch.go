// Package globmatch matches file paths against glob patterns with `*`, `?`,
// and `**`. The matcher is a bounded backtracking walk over pattern and text
// positions, not a compiled regex: worst-case cost is polynomial in
// pattern length times path length, so a hostile pattern cannot trigger
// catastrophic backtracking. Patterns are never "invalid" here; anything
// malformed simply fails to match. Input bounds (pattern length, wildcard
// count) are enforced upstream by request validation.
package globmatch

import "strings"

// Match matches path against pattern, dispatching on pattern shape:
// a pattern containing '/' is matched segment-wise against the whole path
// with `**` spanning zero or more segments; a pattern without '/' is
// matched against the path's final segment, so "*.ml" selects .ml files
// anywhere in the tree.
func Match(pattern, path string) bool {
	if strings.ContainsRune(pattern, '/') {
		return MatchesRecursive(pattern, path)
	}
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}
	return Matches(pattern, base)
}

// Matches matches a single path segment against a pattern where `*` matches
// any run of characters within the segment and `?` matches exactly one.
func Matches(pattern, text string) bool {
	// Iterative wildcard match with one backtrack point per star. Each
	// (pattern, text) position is visited at most once per star, which keeps
	// the cost at O(len(pattern) * len(text)).
	p, t := 0, 0
	starP, starT := -1, -1

	for t < len(text) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == text[t]):
			p++
			t++
		case p < len(pattern) && pattern[p] == '*':
			starP = p
			starT = t
			p++
		case starP >= 0:
			// Extend the most recent star by one character and retry.
			starT++
			p = starP + 1
			t = starT
		default:
			return false
		}
	}

	// Only trailing stars may remain.
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// MatchesRecursive matches a '/'-separated pattern against a '/'-separated
// path. A `**` segment matches zero or more whole path segments; every other
// segment is matched with Matches. Sub-problems are memoized so the
// skip-or-consume alternatives for `**` never re-enter the same state.
func MatchesRecursive(pattern, path string) bool {
	ps := strings.Split(pattern, "/")
	ts := strings.Split(path, "/")

	memo := make(map[[2]int]bool, len(ps)*len(ts))

	var match func(pi, ti int) bool
	match = func(pi, ti int) bool {
		key := [2]int{pi, ti}
		if v, ok := memo[key]; ok {
			return v
		}

		var result bool
		switch {
		case pi == len(ps):
			result = ti == len(ts)
		case ps[pi] == "**":
			// Skip the ** entirely, or consume one path segment under it.
			result = match(pi+1, ti) || (ti < len(ts) && match(pi, ti+1))
		case ti == len(ts):
			result = false
		default:
			result = Matches(ps[pi], ts[ti]) && match(pi+1, ti+1)
		}

		memo[key] = result
		return result
	}

	return match(0, 0)
}
