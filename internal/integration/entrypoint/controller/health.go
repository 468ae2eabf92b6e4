// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	cacheBackend    string
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	RateLimit string `json:"rate_limit"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// cacheBackend names where rate limit counters live ("redis" or "memory").
func NewHealthController(dbHealthChecker func() bool, cacheBackend string) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		cacheBackend:    cacheBackend,
	}
}

// Check handles GET /health requests.
// The status is "degraded" with 503 when the report store is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	status, code := "ok", http.StatusOK
	dbStatus := "connected"
	if h.dbHealthChecker == nil || !h.dbHealthChecker() {
		status, code = "degraded", http.StatusServiceUnavailable
		dbStatus = "disconnected"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		RateLimit: h.cacheBackend,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
