package api

import (
	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the host API surface onto a gin engine, backed by e.
// Handlers take an explicit *engine.Engine handle rather than reaching
// into engine.Registry.
func NewRouter(e *engine.Engine, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	health := HealthAPI{}
	products := NewProductsAPI(e, log)
	facetsAPI := NewFacetsAPI(e)

	r.GET("/health", health.HealthCheck)

	v1 := r.Group("/v1")
	v1.GET("/products/search", products.SearchProducts)
	v1.GET("/categories", facetsAPI.GetCategories)
	v1.GET("/tags", facetsAPI.GetTags)
	v1.GET("/orders", facetsAPI.GetOrders)
	v1.GET("/suggest", facetsAPI.Suggest)

	return r
}
