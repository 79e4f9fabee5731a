// Package engine assembles the catalog container, the N-gram tree, and
// the facet indexes into the query pipeline, and exposes the host API
// surface for search, facets, and orders.
package engine

import (
	"fmt"

	"github.com/brightlane/fuzzyindex/internal/catalog"
	"github.com/brightlane/fuzzyindex/internal/codec"
	"github.com/brightlane/fuzzyindex/internal/facets"
	"github.com/brightlane/fuzzyindex/internal/ngram"
)

// Index is the fully assembled, immutable artifact produced by a build
// and consumed by the host at query time: the product container, the
// gram tree, and the three classic facet indexes, in a fixed frame
// order.
type Index struct {
	Container  *catalog.Container
	Gram       *ngram.Index
	Categories *facets.CategoryIndex
	Tags       *facets.TagIndex
	Orders     *facets.OrderIndex
}

// SerializeAll writes the index in a fixed order:
// ProductContainer ‖ GramIndex ‖ ClassicIndexes (Category ‖ Tag ‖ Order).
func SerializeAll(idx *Index) []byte {
	w := codec.NewWriter()
	idx.Container.Encode(w)
	idx.Gram.Encode(w)
	idx.Categories.Encode(w)
	idx.Tags.Encode(w)
	idx.Orders.Encode(w)
	return w.Bytes()
}

// DeserializeAll reverses SerializeAll. Load is all-or-nothing: any parse
// failure discards everything decoded so far and returns an error — no
// partial index is ever exposed.
func DeserializeAll(data []byte) (*Index, error) {
	r := codec.NewReader(data)

	container, err := catalog.DecodeContainer(r)
	if err != nil {
		return nil, fmt.Errorf("engine: decode product container: %w", err)
	}
	gram, err := ngram.DecodeIndex(r)
	if err != nil {
		return nil, fmt.Errorf("engine: decode gram index: %w", err)
	}
	categories, err := facets.DecodeCategoryIndex(r)
	if err != nil {
		return nil, fmt.Errorf("engine: decode category index: %w", err)
	}
	tags, err := facets.DecodeTagIndex(r)
	if err != nil {
		return nil, fmt.Errorf("engine: decode tag index: %w", err)
	}
	orders, err := facets.DecodeOrderIndex(r)
	if err != nil {
		return nil, fmt.Errorf("engine: decode order index: %w", err)
	}
	if !r.Done() {
		return nil, fmt.Errorf("engine: %w (%d bytes)", codec.ErrTrailingBytes, r.Remaining())
	}

	return &Index{
		Container:  container,
		Gram:       gram,
		Categories: categories,
		Tags:       tags,
		Orders:     orders,
	}, nil
}
