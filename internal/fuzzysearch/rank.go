package fuzzysearch

import (
	"sort"

	"github.com/brightlane/fuzzyindex/internal/ngram"
)

// Result is one ranked product: its stable serialization id and its
// accumulated match confidence.
type Result struct {
	ProductID  int32
	Confidence float32
}

// ResultRanker accumulates per-product confidence across every matched
// window of a query, keyed by the product's serialization id.
type ResultRanker struct {
	totals map[int32]float32
}

// NewResultRanker returns an empty ranker.
func NewResultRanker() *ResultRanker {
	return &ResultRanker{totals: make(map[int32]float32)}
}

// Add folds one search_gram match into the running per-product totals: for
// every product in idx.Data[match.Tuple], its confidence accumulator grows
// by match.Confidence.
func (r *ResultRanker) Add(idx *ngram.Index, match Match) {
	for _, id := range idx.Data[match.Tuple] {
		r.totals[id] += match.Confidence
	}
}

// Results returns the accumulated totals in descending confidence order,
// with ties broken by ascending serialization id for a deterministic,
// bit-exact ordering across equivalent inputs.
func (r *ResultRanker) Results() []Result {
	out := make([]Result, 0, len(r.totals))
	for id, conf := range r.totals {
		out = append(out, Result{ProductID: id, Confidence: conf})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
