// Package fuzzy ranks known option forms and command names against a
// mistyped token so the error handler can print "Did you mean" hints.
package fuzzy

import (
	"sort"
	"strings"
)

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// Matcher ranks candidates within a maximum edit distance.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher. Inputs shorter than two characters after
// their leading dashes are never matched.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{maxDistance: maxDistance, minLength: 2}
}

// FindBest returns the best candidate, or "" when none is close enough.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within the maximum distance, best
// first. Comparison ignores case and leading dashes, so "-verbose" still
// finds "--verbose". Exact matches are skipped.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	needle := normalize(input)
	if len(needle) < m.minLength {
		return nil
	}

	var matches []Match
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		hay := normalize(candidate)
		if hay == needle && candidate == input {
			continue
		}
		d := Distance(needle, hay, m.maxDistance)
		if d > m.maxDistance {
			continue
		}
		matches = append(matches, Match{Value: candidate, Distance: d, Score: score(needle, hay, d)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimLeft(s, "-"))
}

// score weights edit distance against shared prefix and length.
func score(a, b string, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	s := 1 - float64(distance)/float64(longest)
	if shortest := min(len(a), len(b)); shortest > 0 {
		s += float64(commonPrefix(a, b)) / float64(shortest) * 0.3
	}
	s += (1 - float64(absInt(len(a)-len(b)))/float64(longest)) * 0.2

	return min(s, 1)
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Distance is the optimal string alignment distance between a and b: the
// Levenshtein distance with adjacent transpositions counted as one edit.
// Computation stops early once the distance must exceed limit, in which
// case limit+1 is returned. A negative limit disables the cutoff.
func Distance(a, b string, limit int) int {
	if limit >= 0 && absInt(len(a)-len(b)) > limit {
		return limit + 1
	}

	// Three rows: two back for transpositions, one back, current.
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, cur[j])
		}
		if limit >= 0 && rowMin > limit {
			return limit + 1
		}
		prev2, prev, cur = prev, cur, prev2
	}

	return prev[len(b)]
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Suggest returns up to limit candidates close to input, best first.
func Suggest(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}
