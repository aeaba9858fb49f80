package adaptor

import (
	"context"
	"net/http"
	"time"

	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	pinger Pinger
	log    *zap.Logger
}

func NewHealthHandler(pinger Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		pinger: pinger,
		log:    log.With(zap.String("handler", "health")),
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		utils.ResponseUnavailable(w, "Database unavailable")
		return
	}

	utils.WriteText(w, http.StatusOK, "OK")
}
