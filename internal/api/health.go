package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthAPI serves the liveness probe consumed by the load balancer.
type HealthAPI struct{}

// HealthCheck handles GET /health.
func (HealthAPI) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "service healthy",
	})
}
