package engine

import (
	"sort"

	"github.com/brightlane/fuzzyindex/internal/catalog"
	"github.com/brightlane/fuzzyindex/internal/facets"
	"github.com/brightlane/fuzzyindex/internal/fuzzysearch"
	"go.uber.org/zap"
)

// Engine wraps a loaded Index with the query pipeline and the host API
// surface. It holds no per-query mutable state: CategoryHandler and
// TagHandler instances are supplied by the caller per query, since
// handlers are per-session state.
type Engine struct {
	idx *Index
	log *zap.Logger
}

// New wraps an already-decoded Index. Most callers should use Initialize
// instead, which also performs the decode.
func New(idx *Index, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{idx: idx, log: log}
}

// Initialize decodes data into a fresh Index and wraps it, matching the
// host API's initialize(bytes) -> bool. false means the bytes failed to
// decode; no partial engine is ever returned.
func Initialize(data []byte, log *zap.Logger) (*Engine, bool) {
	idx, err := DeserializeAll(data)
	if err != nil {
		if log != nil {
			log.Warn("engine: failed to initialize index", zap.Error(err))
		}
		return nil, false
	}
	return New(idx, log), true
}

// SearchRequest bundles the inputs to one Search call.
type SearchRequest struct {
	Query          string
	Categories     *facets.CategoryHandler
	Tags           *facets.TagHandler
	OrderName      string
	FeatureFilters []facets.FeatureFilter
}

// SearchHit is one product surfaced by Search, carrying its confidence
// (meaningless once an explicit order is applied, but always populated).
type SearchHit struct {
	Product    catalog.Product
	Confidence float32
}

// Search runs the full query pipeline: gram scan, facet filtering,
// feature filtering, then either confidence order or a named permutation.
// A query shorter than N grams produces no window and an empty result,
// the same empty result as a query with no matches; the two cases are
// not distinguished.
func (e *Engine) Search(req SearchRequest) []SearchHit {
	grams := catalog.QueryGramFeed(req.Query)
	matches := fuzzysearch.Scan(e.idx.Gram, grams)

	hits := make([]SearchHit, 0, len(matches))
	for _, m := range matches {
		product, ok := e.idx.Container.Product(int(m.ProductID))
		if !ok {
			continue
		}
		if req.Categories != nil && !req.Categories.IsValid(int(m.ProductID)) {
			continue
		}
		if req.Tags != nil && !req.Tags.IsValid(int(m.ProductID)) {
			continue
		}
		if !e.passesFeatureFilters(int(m.ProductID), req.FeatureFilters) {
			continue
		}
		hits = append(hits, SearchHit{Product: product, Confidence: m.Confidence})
	}

	if req.OrderName != "" {
		if rank, ok := e.idx.Orders.Rank(req.OrderName); ok {
			sort.SliceStable(hits, func(i, j int) bool {
				ri, rj := rankOf(rank, hits[i].Product.SerializationID), rankOf(rank, hits[j].Product.SerializationID)
				return ri < rj
			})
		}
	}

	return hits
}

func rankOf(rank []uint32, sid int) uint32 {
	if sid < 0 || sid >= len(rank) {
		return uint32(len(rank))
	}
	return rank[sid]
}

func (e *Engine) passesFeatureFilters(productID int, filters []facets.FeatureFilter) bool {
	for _, f := range filters {
		if !f.Matches(e.idx.Container.Features, productID) {
			return false
		}
	}
	return true
}

// Categories returns the category index for building category handlers
// and for the host API's get_categories().
func (e *Engine) Categories() *facets.CategoryIndex {
	return e.idx.Categories
}

// Tags returns the tag index, for get_tags().
func (e *Engine) Tags() *facets.TagIndex {
	return e.idx.Tags
}

// Orders returns every registered order name, for get_orders().
func (e *Engine) Orders() []string {
	return e.idx.Orders.Names()
}

// TagSuggestion implements the host API's tag_suggestion(query).
func (e *Engine) TagSuggestion(query string) (tag, matchedWord string, ok bool) {
	return fuzzysearch.TagSuggestion(query, e.idx.Tags.Names(), fuzzysearch.DefaultSuggestionMinLen, fuzzysearch.DefaultSuggestionThreshold)
}

// VendorName resolves a product's vendor name, for hosts rendering a
// SearchHit without reaching into the underlying container directly.
func (e *Engine) VendorName(p catalog.Product) string {
	return p.Vendor(e.idx.Container.Vendors)
}

// Feature looks up a feature column value for a product by serialization id.
func (e *Engine) Feature(key string, serializationID int) (catalog.FeatureValue, bool) {
	return e.idx.Container.Features.Get(key, serializationID)
}
