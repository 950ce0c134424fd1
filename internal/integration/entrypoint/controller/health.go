package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker probes one dependency.
type HealthChecker func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker HealthChecker
	optional        map[string]HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// Optional checkers (redis, broker) are reported but never fail the check.
func NewHealthController(dbHealthChecker HealthChecker, optional map[string]HealthChecker) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		optional:        optional,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.dbHealthChecker == nil || h.dbHealthChecker(ctx) != nil {
		response.Status = "degraded"
		response.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}

	if len(h.optional) > 0 {
		response.Dependencies = make(map[string]string, len(h.optional))
		for name, check := range h.optional {
			state := "connected"
			if err := check(ctx); err != nil {
				state = "disconnected"
			}
			response.Dependencies[name] = state
		}
	}

	c.JSON(status, response)
}
