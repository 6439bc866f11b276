package handlers

import (
	"net/http"
	"time"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/storage"
	"go.uber.org/zap"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthHandler provides health check endpoints
type HealthHandler struct {
	repo   storage.Repository
	logger *zap.SugaredLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo storage.Repository, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{repo: repo, logger: logger}
}

// Check handles GET /api/v1/health (liveness probe)
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:  "ok",
		Version: version,
		Uptime:  time.Since(startTime).String(),
	})
}

// Ready handles GET /api/v1/health/ready (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, models.HealthStatus{
			Status:  "not ready",
			Version: version,
			Storage: "unavailable",
		})
		return
	}

	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:  "ready",
		Version: version,
		Uptime:  time.Since(startTime).String(),
		Storage: "ok",
	})
}
