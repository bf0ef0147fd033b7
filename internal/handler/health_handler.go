package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker is a dependency that can report whether it is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db        HealthChecker
	rateStore HealthChecker
	logger    *slog.Logger
	now       func() time.Time
}

// NewHealthHandler creates a new health handler. A nil rateStore means
// rate-limit counters live in process memory.
func NewHealthHandler(db HealthChecker, rateStore HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		rateStore: rateStore,
		logger:    logger,
		now:       time.Now,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Services:  make(map[string]string),
	}

	// Check database
	if err := h.db.Health(ctx); err != nil {
		h.logger.Error("database health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["database"] = "unhealthy"
	} else {
		response.Services["database"] = "healthy"
	}

	// Check rate-limit store
	if h.rateStore != nil {
		if err := h.rateStore.Health(ctx); err != nil {
			h.logger.Error("rate limit store health check failed", slog.String("error", err.Error()))
			response.Status = "unhealthy"
			response.Services["rate_limit_store"] = "unhealthy"
		} else {
			response.Services["rate_limit_store"] = "healthy"
		}
	} else {
		response.Services["rate_limit_store"] = "memory"
	}

	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
