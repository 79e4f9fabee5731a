package fuzzysearch

import (
	"strings"
)

// DefaultSuggestionMinLen and DefaultSuggestionThreshold are the default
// minimum word length and overlap-ratio threshold for tag suggestions.
const (
	DefaultSuggestionMinLen    = 3
	DefaultSuggestionThreshold = 0.8
)

// TagSuggestion implements tag_suggestion: a per-word character-overlap
// heuristic against the known tag names. Only words at least minLen runes
// long are considered. For each candidate (word, tag) pair the overlap
// ratio is the size of the multiset intersection of their lowercased runes
// divided by the length of the longer string; the first pair whose ratio
// exceeds threshold, scanning query words in order and tags in the order
// given, is returned.
func TagSuggestion(query string, tags []string, minLen int, threshold float64) (tag string, matchedWord string, ok bool) {
	words := strings.Fields(strings.ToLower(query))
	for _, word := range words {
		if len([]rune(word)) < minLen {
			continue
		}
		for _, candidate := range tags {
			if overlapRatio(word, strings.ToLower(candidate)) > threshold {
				return candidate, word, true
			}
		}
	}
	return "", "", false
}

// overlapRatio computes |multiset(a) ∩ multiset(b)| / max(len(a), len(b))
// over runes.
func overlapRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	counts := make(map[rune]int, len(ra))
	for _, r := range ra {
		counts[r]++
	}

	shared := 0
	for _, r := range rb {
		if counts[r] > 0 {
			counts[r]--
			shared++
		}
	}

	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	return float64(shared) / float64(longer)
}
