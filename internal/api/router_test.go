package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightlane/fuzzyindex/internal/catalog"
	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/brightlane/fuzzyindex/internal/facets"
	"github.com/brightlane/fuzzyindex/internal/ngram"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw := []catalog.RawProduct{
		{ID: "p0", Title: "apple", Vendor: "acme", PriceAmount: 1.5},
		{ID: "p1", Title: "apricot", Vendor: "acme", PriceAmount: 2.0},
	}
	container := catalog.BuildContainer(raw)

	builder := ngram.NewBuilder(3)
	for _, p := range container.Products {
		builder.Feed(int32(p.SerializationID), catalog.GramFeed(p, p.Vendor(container.Vendors)))
	}
	gram := ngram.Freeze(builder, container.Len(), 0.80)

	idx := &engine.Index{
		Container:  container,
		Gram:       gram,
		Categories: facets.NewCategoryIndex(nil),
		Tags:       facets.NewTagIndex([]facets.RawTag{{Name: "fruit", ProductIDs: []int{0, 1}}}),
		Orders:     facets.NewOrderBuilder(container.Len()).Freeze(),
	}
	return engine.New(idx, nil)
}

func TestHealthEndpoint(t *testing.T) {
	r := NewRouter(testEngine(t), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	r := NewRouter(testEngine(t), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products/search", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointReturnsHits(t *testing.T) {
	r := NewRouter(testEngine(t), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products/search?q=appl", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p0")
}

func TestTagsEndpoint(t *testing.T) {
	r := NewRouter(testEngine(t), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/tags", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fruit")
}
