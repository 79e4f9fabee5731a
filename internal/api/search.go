// Package api exposes the query engine over gin: GET endpoints backed by
// confidence-ranked fuzzy search, facet listings, and tag suggestions.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brightlane/fuzzyindex/internal/catalog"
	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/brightlane/fuzzyindex/internal/facets"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductsAPI serves the search endpoint against a loaded engine.
type ProductsAPI struct {
	engine *engine.Engine
	log    *zap.Logger
}

// NewProductsAPI constructs a ProductsAPI bound to e.
func NewProductsAPI(e *engine.Engine, log *zap.Logger) *ProductsAPI {
	return &ProductsAPI{engine: e, log: log}
}

// productHit is the wire shape returned to API clients.
type productHit struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Vendor     string  `json:"vendor"`
	Price      float32 `json:"price"`
	ImageURL   string  `json:"image_url,omitempty"`
	Confidence float32 `json:"confidence"`
}

// SearchProducts handles GET /v1/products/search?q=...&category=color:red&
// tag=clearance&order=Price+low+to+high.
func (api *ProductsAPI) SearchProducts(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "query param q is required"})
		return
	}

	categoryHandler := facets.NewCategoryHandler()
	for _, raw := range c.QueryArray("category") {
		name, option, ok := strings.Cut(raw, ":")
		if !ok {
			continue
		}
		categoryHandler.Activate(api.engine.Categories(), name, option)
	}

	tagHandler := facets.NewTagHandler()
	for _, tag := range c.QueryArray("tag") {
		tagHandler.Activate(api.engine.Tags(), tag)
	}

	limit := 20
	if ls := c.Query("limit"); ls != "" {
		if l, err := strconv.Atoi(ls); err == nil && l > 0 {
			limit = l
		}
	}

	hits := api.engine.Search(engine.SearchRequest{
		Query:      q,
		Categories: categoryHandler,
		Tags:       tagHandler,
		OrderName:  c.Query("order"),
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]productHit, 0, len(hits))
	for _, h := range hits {
		price, _ := api.engine.Feature(catalog.FeaturePrice, h.Product.SerializationID)
		imageURL, _ := api.engine.Feature(catalog.FeatureImageURL, h.Product.SerializationID)
		out = append(out, productHit{
			ID:         h.Product.ID,
			Title:      h.Product.Title,
			Vendor:     api.engine.VendorName(h.Product),
			Price:      price.Float,
			ImageURL:   imageURL.String,
			Confidence: h.Confidence,
		})
	}

	if api.log != nil {
		api.log.Debug("search served", zap.String("query", q), zap.Int("hits", len(out)))
	}
	c.JSON(http.StatusOK, gin.H{"hits": out, "count": len(out)})
}
