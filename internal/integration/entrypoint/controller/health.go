package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil cacheHealthChecker reports the cache as disabled.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// The API answers 503 when the database is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	status := http.StatusOK
	response := HealthResponse{
		Status:    "ok",
		Database:  "connected",
		Cache:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.dbHealthChecker == nil || !h.dbHealthChecker() {
		status = http.StatusServiceUnavailable
		response.Status = "degraded"
		response.Database = "disconnected"
	}

	if h.cacheHealthChecker != nil {
		response.Cache = "connected"
		if !h.cacheHealthChecker() {
			response.Cache = "disconnected"
		}
	}

	c.JSON(status, response)
}
