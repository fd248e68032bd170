package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DependencyChecker reports one dependency's health, keyed by name.
type DependencyChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version  string
	checkers []DependencyChecker
}

// NewHealthHandler builds the handler. checkers is the optional dependency
// set readiness verifies; liveness never touches dependencies.
func NewHealthHandler(version string, checkers ...DependencyChecker) *HealthHandler {
	return &HealthHandler{version: version, checkers: checkers}
}

// Live handles GET /healthz.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Ready handles GET /readyz: every registered dependency must answer.
func (h *HealthHandler) Ready(c *gin.Context) {
	components := make(map[string]string, len(h.checkers))
	healthy := true

	for _, checker := range h.checkers {
		if err := checker.Check(c.Request.Context()); err != nil {
			components[checker.Name] = err.Error()
			healthy = false
			continue
		}
		components[checker.Name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "components": components})
}
