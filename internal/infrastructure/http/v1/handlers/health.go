package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by *postgres.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db         Pinger // nil when the policy does not use a database
	policyName string
	version    string
}

// NewHealthHandler creates a new health handler. db may be nil.
func NewHealthHandler(db Pinger, policyName, version string) *HealthHandler {
	return &HealthHandler{db: db, policyName: policyName, version: version}
}

// Live handles liveness probe.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles readiness probe.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{"tax_policy": h.policyName}

	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "checks": checks})
			return
		}
		checks["database"] = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":        "salesinvoice",
		"version":    h.version,
		"tax_policy": h.policyName,
	})
}
