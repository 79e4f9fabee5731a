package api

import (
	"net/http"

	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/gin-gonic/gin"
)

// FacetsAPI serves the category, tag, and order listing endpoints, plus
// the tag suggestion heuristic.
type FacetsAPI struct {
	engine *engine.Engine
}

// NewFacetsAPI constructs a FacetsAPI bound to e.
func NewFacetsAPI(e *engine.Engine) *FacetsAPI {
	return &FacetsAPI{engine: e}
}

type categoryOptionView struct {
	Name string `json:"name"`
}

type categoryView struct {
	Name      string               `json:"name"`
	Exclusive bool                 `json:"exclusive"`
	Options   []categoryOptionView `json:"options"`
}

// GetCategories handles GET /v1/categories.
func (api *FacetsAPI) GetCategories(c *gin.Context) {
	idx := api.engine.Categories()
	out := make([]categoryView, 0, len(idx.Categories))
	for _, cat := range idx.Categories {
		opts := make([]categoryOptionView, 0, len(cat.Options))
		for _, o := range cat.Options {
			opts = append(opts, categoryOptionView{Name: o.Name})
		}
		out = append(out, categoryView{Name: cat.Name, Exclusive: cat.Exclusive, Options: opts})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// GetTags handles GET /v1/tags.
func (api *FacetsAPI) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": api.engine.Tags().Names()})
}

// GetOrders handles GET /v1/orders.
func (api *FacetsAPI) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": api.engine.Orders()})
}

// Suggest handles GET /v1/suggest?q=....
func (api *FacetsAPI) Suggest(c *gin.Context) {
	q := c.Query("q")
	tag, word, ok := api.engine.TagSuggestion(q)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"suggestion": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": gin.H{"tag": tag, "matched_word": word}})
}
