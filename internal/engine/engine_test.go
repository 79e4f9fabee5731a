package engine

import (
	"testing"

	"github.com/brightlane/fuzzyindex/internal/catalog"
	"github.com/brightlane/fuzzyindex/internal/facets"
	"github.com/brightlane/fuzzyindex/internal/ngram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, raw []catalog.RawProduct, n int, cutoff float64, categories []facets.RawCategory, orderBuild func(*facets.OrderBuilder)) *Index {
	t.Helper()

	container := catalog.BuildContainer(raw)

	builder := ngram.NewBuilder(n)
	for _, p := range container.Products {
		grams := catalog.GramFeed(p, p.Vendor(container.Vendors))
		builder.Feed(int32(p.SerializationID), grams)
	}
	gram := ngram.Freeze(builder, container.Len(), cutoff)

	catIdx := facets.NewCategoryIndex(categories)
	tagIdx := facets.NewTagIndex(nil)

	ob := facets.NewOrderBuilder(container.Len())
	if orderBuild != nil {
		orderBuild(ob)
	}
	orders := ob.Freeze()

	return &Index{Container: container, Gram: gram, Categories: catIdx, Tags: tagIdx, Orders: orders}
}

func sampleRaw() []catalog.RawProduct {
	return []catalog.RawProduct{
		{ID: "p0", Title: "apple", Vendor: "acme"},
		{ID: "p1", Title: "apricot", Vendor: "acme"},
		{ID: "p2", Title: "banana", Vendor: "acme"},
	}
}

func TestSearchRanksClosestMatchFirst(t *testing.T) {
	idx := buildTestIndex(t, sampleRaw(), 3, 0.80, nil, nil)
	e := New(idx, nil)

	hits := e.Search(SearchRequest{Query: "appl"})
	require.NotEmpty(t, hits)
	assert.Equal(t, "p0", hits[0].Product.ID)
}

func TestSearchShortQueryIsEmpty(t *testing.T) {
	idx := buildTestIndex(t, sampleRaw(), 5, 0.80, nil, nil)
	e := New(idx, nil)

	hits := e.Search(SearchRequest{Query: "ap"})
	assert.Empty(t, hits)
}

func TestSerializeRoundTripPreservesOrderAndConfidence(t *testing.T) {
	idx := buildTestIndex(t, sampleRaw(), 3, 0.80, nil, nil)
	before := New(idx, nil).Search(SearchRequest{Query: "appl"})

	data := SerializeAll(idx)
	reloaded, err := DeserializeAll(data)
	require.NoError(t, err)

	after := New(reloaded, nil).Search(SearchRequest{Query: "appl"})

	require.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i].Product.ID, after[i].Product.ID)
		assert.InDelta(t, before[i].Confidence, after[i].Confidence, 1e-6)
	}
}

func TestSearchCategoryFilterIntersectsResults(t *testing.T) {
	raw := sampleRaw()
	categories := []facets.RawCategory{
		{Name: "color", Exclusive: true, Options: []facets.RawCategoryOption{
			{Name: "red", ProductIDs: []int{0, 2}},
			{Name: "yellow", ProductIDs: []int{1}},
		}},
	}
	idx := buildTestIndex(t, raw, 3, 0.80, categories, nil)
	e := New(idx, nil)

	handler := facets.NewCategoryHandler()
	handler.Activate(idx.Categories, "color", "red")

	hits := e.Search(SearchRequest{Query: "apricot", Categories: handler})
	for _, h := range hits {
		assert.Contains(t, []string{"p0", "p2"}, h.Product.ID)
	}
}

func TestSearchAppliesNamedOrder(t *testing.T) {
	raw := []catalog.RawProduct{
		{ID: "p0", Title: "widget", Vendor: "acme", PriceAmount: 3.0},
		{ID: "p1", Title: "widget", Vendor: "acme", PriceAmount: 1.0},
		{ID: "p2", Title: "widget", Vendor: "acme", PriceAmount: 2.0},
	}
	prices := []float64{3.0, 1.0, 2.0}
	// All three products share every tuple, so a cutoff of 1.0 keeps them;
	// at 0.80 (floor(2.4) = 2) every tuple would be dropped.
	idx := buildTestIndex(t, raw, 3, 1.0, nil, func(ob *facets.OrderBuilder) {
		ob.Register("Price low to high", func(sid int) float64 { return prices[sid] })
	})
	e := New(idx, nil)

	hits := e.Search(SearchRequest{Query: "widget", OrderName: "Price low to high"})
	require.Len(t, hits, 3)
	assert.Equal(t, "p1", hits[0].Product.ID)
	assert.Equal(t, "p2", hits[1].Product.ID)
	assert.Equal(t, "p0", hits[2].Product.ID)
}

func TestInitializeFailsFastOnGarbageInput(t *testing.T) {
	_, ok := Initialize([]byte{0xFF, 0xFF, 0xFF}, nil)
	assert.False(t, ok)
}

func TestRegistrySetAndGet(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.Get())

	idx := buildTestIndex(t, sampleRaw(), 3, 0.80, nil, nil)
	reg.Set(New(idx, nil))
	assert.NotNil(t, reg.Get())
}

func TestTagSuggestionThroughEngine(t *testing.T) {
	idx := buildTestIndex(t, sampleRaw(), 3, 0.80, nil, nil)
	idx.Tags = facets.NewTagIndex([]facets.RawTag{{Name: "electronics", ProductIDs: nil}})
	e := New(idx, nil)

	tag, word, ok := e.TagSuggestion("looking for electroniks stuff")
	require.True(t, ok)
	assert.Equal(t, "electronics", tag)
	assert.Equal(t, "electroniks", word)
}
