package fuzzysearch

import (
	"testing"

	"github.com/brightlane/fuzzyindex/internal/ngram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildIndex feeds each (already lowercase) word's runes directly instead
// of going through catalog.GramFeed, to keep this package's tests
// independent of catalog.
func buildIndex(n int, words []string) *ngram.Index {
	b := ngram.NewBuilder(n)
	for id, w := range words {
		b.Feed(int32(id), []rune(w))
	}
	return ngram.Freeze(b, len(words), 0.80)
}

func TestScanRanksExactMatchAboveSimilarWord(t *testing.T) {
	idx := buildIndex(3, []string{"apple", "apricot", "banana"})
	results := Scan(idx, []rune("appl"))
	require.NotEmpty(t, results)
	assert.Equal(t, int32(0), results[0].ProductID, "apple (id 0) should rank first")

	var appleConf, apricotConf float32
	for _, r := range results {
		switch r.ProductID {
		case 0:
			appleConf = r.Confidence
		case 1:
			apricotConf = r.Confidence
		}
	}
	assert.Greater(t, appleConf, apricotConf)
}

func TestScanSingleDeletionStillRecoversWord(t *testing.T) {
	idx := buildIndex(3, []string{"apple", "apricot", "banana"})
	results := Scan(idx, []rune("aple"))
	require.NotEmpty(t, results)

	top2 := results
	if len(top2) > 2 {
		top2 = top2[:2]
	}
	found := false
	for _, r := range top2 {
		if r.ProductID == 0 {
			found = true
		}
	}
	assert.True(t, found, "apple should remain in the top 2 after one deletion")
}

func TestScanShortQueryIsEmpty(t *testing.T) {
	idx := buildIndex(3, []string{"xyz"})
	results := Scan(idx, []rune("xy"))
	assert.Empty(t, results)
}

func TestScanEmptyQueryIsEmpty(t *testing.T) {
	idx := buildIndex(4, []string{"widget", "gadget"})
	assert.Empty(t, Scan(idx, nil))
}

func TestSearchGramFailsFastOnUnknownRoot(t *testing.T) {
	idx := buildIndex(3, []string{"apple"})
	_, ok := SearchGram(idx, []rune("zzz"))
	assert.False(t, ok)
}

func TestSearchGramExactMatchPrefersFullWeight(t *testing.T) {
	idx := buildIndex(3, []string{"apple", "apple", "apple"})
	match, ok := SearchGram(idx, []rune("app"))
	require.True(t, ok)
	assert.InDelta(t, float32(1.0), match.Confidence, 1e-6)
}

func TestTagSuggestionMatchesOverlappingWord(t *testing.T) {
	tags := []string{"electronics", "kitchen", "outdoor"}
	tag, word, ok := TagSuggestion("need a new electroniks gadget", tags, DefaultSuggestionMinLen, DefaultSuggestionThreshold)
	require.True(t, ok)
	assert.Equal(t, "electronics", tag)
	assert.Equal(t, "electroniks", word)
}

func TestTagSuggestionIgnoresShortWords(t *testing.T) {
	tags := []string{"electronics"}
	_, _, ok := TagSuggestion("an it", tags, DefaultSuggestionMinLen, DefaultSuggestionThreshold)
	assert.False(t, ok)
}
