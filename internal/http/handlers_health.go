package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers serves readiness/liveness checks.
type HealthHandlers struct {
	Pinger Pinger
	Logger *slog.Logger
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions string `json:"sessions,omitempty"`
}

// Healthz returns 200 when the session store answers, 503 otherwise.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK

	if h.Pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.Pinger.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WarnContext(r.Context(), "health check failed", "error", err)
			}
			resp = healthResponse{Status: "unavailable", Sessions: "unreachable"}
			status = http.StatusServiceUnavailable
		} else {
			resp.Sessions = "ok"
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, r, status, resp)
}
