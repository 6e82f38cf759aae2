package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/gocommerce-catalog/internal/store"
	"github.com/abgdnv/gocommerce-catalog/pkg/web"
	"github.com/go-chi/chi/v5"
)

const readinessTimeout = 2 * time.Second

// ProbeHandler serves the liveness and readiness endpoints.
type ProbeHandler struct {
	pinger store.Pinger
	logger *slog.Logger
}

func NewProbeHandler(pinger store.Pinger, logger *slog.Logger) *ProbeHandler {
	return &ProbeHandler{pinger: pinger, logger: logger.With("component", "probes")}
}

func (h *ProbeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadinessCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *ProbeHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadinessCheck reports 503 while the store cannot be reached.
func (h *ProbeHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		web.RespondError(w, h.logger, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ready"})
}
