// Package fuzzysearch implements the windowed N-gram scan, the bounded-edit
// recursive gram search, and confidence-ranked result aggregation.
package fuzzysearch

import "github.com/brightlane/fuzzyindex/internal/ngram"

// Match is the result of one successful search_gram call: the dictionary
// N-tuple reached by the bounded-edit walk, and the accumulated confidence
// (product of traversed edge weights).
type Match struct {
	Tuple      string
	Confidence float32
}

// SearchGram anchors on roots[window[0]] and performs the bounded-error
// recursive walk of depth N-1. It reports false if the anchor root does
// not exist (a lookup miss, never an error).
func SearchGram(idx *ngram.Index, window []rune) (Match, bool) {
	if len(window) != idx.N {
		return Match{}, false
	}
	root, ok := idx.Roots[window[0]]
	if !ok {
		return Match{}, false
	}

	budget := idx.N / 3
	out := make([]rune, 1, idx.N)
	out[0] = window[0]

	tuple, weight, found := searchStep(idx.N, root, nil, window, 1, budget, 1.0, out)
	if !found {
		return Match{}, false
	}
	return Match{Tuple: tuple, Confidence: weight}, true
}

// searchStep explores the four moves in a fixed order —
// exact match, substitution, insertion, deletion — keeping the
// highest-weight successful branch. Ties are broken in favor of whichever
// branch was discovered first, which is always exact match since it is
// tried first.
func searchStep(n int, node, parent *ngram.QueryNode, window []rune, pos, budget int, weight float32, out []rune) (string, float32, bool) {
	if len(out) == n {
		return string(out), weight, true
	}
	if pos >= len(window) {
		return "", 0, false
	}

	inputGram := window[pos]

	var bestTuple string
	var bestWeight float32
	bestFound := false

	consider := func(tuple string, w float32, ok bool) {
		if !ok {
			return
		}
		if !bestFound || w > bestWeight {
			bestTuple, bestWeight, bestFound = tuple, w, true
		}
	}

	// 1. Exact match: no edit charged, consumes the input gram.
	if child, ok := node.Child(inputGram); ok {
		consider(searchStep(n, child, node, window, pos+1, budget, weight*child.Weight, appendOut(out, inputGram)))
	}

	// 2. Substitution: one edit, consumes the input gram.
	if budget >= 1 {
		for _, c := range node.ByOccurrences {
			if c.Item == inputGram {
				continue
			}
			consider(searchStep(n, c, node, window, pos+1, budget-1, weight*c.Weight, appendOut(out, c.Item)))
		}
	}

	// 3. Insertion: same candidates as substitution, but the input gram is
	// not consumed (pos stays put). Charges two edits, matching the
	// source's accounting — see DESIGN.md.
	if budget >= 2 {
		for _, c := range node.ByOccurrences {
			if c.Item == inputGram {
				continue
			}
			consider(searchStep(n, c, node, window, pos, budget-2, weight*c.Weight, appendOut(out, c.Item)))
		}
	}

	// 4. Deletion: one edit, descends from the parent (one tree level
	// shallower) and replaces the last output slot instead of extending it.
	// Weight is left unchanged.
	if budget >= 1 && parent != nil {
		if pc, ok := parent.Child(inputGram); ok {
			replaced := append([]rune{}, out[:len(out)-1]...)
			replaced = append(replaced, inputGram)
			consider(searchStep(n, pc, parent, window, pos+1, budget-1, weight, replaced))
		}
	}

	return bestTuple, bestWeight, bestFound
}

func appendOut(out []rune, g rune) []rune {
	next := make([]rune, len(out)+1)
	copy(next, out)
	next[len(out)] = g
	return next
}
