package fuzzysearch

import "github.com/brightlane/fuzzyindex/internal/ngram"

// Scan performs the windowed scan: maintain a rolling window of the last
// N grams, and for every position at which a full window exists, run
// SearchGram and aggregate the result into a ranker. A query shorter than
// N grams produces no windows and an empty result.
func Scan(idx *ngram.Index, queryGrams []rune) []Result {
	ranker := NewResultRanker()
	if len(queryGrams) < idx.N {
		return ranker.Results()
	}

	for end := idx.N; end <= len(queryGrams); end++ {
		window := queryGrams[end-idx.N : end]
		if match, ok := SearchGram(idx, window); ok {
			ranker.Add(idx, match)
		}
	}

	return ranker.Results()
}
