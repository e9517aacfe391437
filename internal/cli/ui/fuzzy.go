package ui

import (
	"slices"
	"strings"
)

// MaxDistance is the largest edit distance FindSimilar accepts.
const MaxDistance = 3

// FindSimilar returns up to limit candidates within MaxDistance edits of
// target, closest first, compared case-insensitively.
//
//	FindSimilar("Dgo", []string{"Dog", "Cat", "Person"}, 3) // ["Dog"]
func FindSimilar(target string, candidates []string, limit int) []string {
	type match struct {
		value    string
		distance int
	}

	var matches []match
	for _, c := range candidates {
		d := LevenshteinDistance(strings.ToLower(target), strings.ToLower(c))
		if d <= MaxDistance {
			matches = append(matches, match{value: c, distance: d})
		}
	}
	slices.SortStableFunc(matches, func(a, b match) int { return a.distance - b.distance })

	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.value)
	}
	return out
}

// LevenshteinDistance counts the single-rune edits turning s1 into s2.
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
