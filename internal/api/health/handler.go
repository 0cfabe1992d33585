// Package health exposes liveness and readiness endpoints over the three
// backing stores.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"minerva/pkg/logger"
)

// Checker is any backing store that can report connectivity.
type Checker interface {
	Health(ctx context.Context) error
}

// Handler provides health check endpoints
type Handler struct {
	log         *logger.Logger
	checkers    map[string]Checker
	startTime   time.Time
	serviceName string
	version     string
}

// New creates a health handler over named store checkers.
func New(log *logger.Logger, checkers map[string]Checker, serviceName, version string) *Handler {
	return &Handler{
		log:         log,
		checkers:    checkers,
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
	}
}

// Status is the overall health report.
type Status struct {
	Status    string                     `json:"status"` // healthy, degraded, unhealthy
	Service   string                     `json:"service"`
	Version   string                     `json:"version"`
	Uptime    string                     `json:"uptime"`
	Timestamp string                     `json:"timestamp"`
	Checks    map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth is the health of a single backing store.
type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HandleLiveness returns 200 OK while the process runs.
// Used by the Kubernetes liveness probe.
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// HandleReadiness returns 200 only when every store is reachable.
// Used by the Kubernetes readiness probe.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, healthy, total := h.runChecks(ctx)

	statusCode := http.StatusOK
	if healthy < total {
		status.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
		h.log.Warn("Readiness check failed", "checks", status.Checks)
	}

	writeJSON(w, statusCode, status)
}

// HandleHealth returns the detailed per-store report. A partial outage
// reports degraded but still returns 200.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status, healthy, total := h.runChecks(ctx)

	statusCode := http.StatusOK
	if healthy == 0 && total > 0 {
		status.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	} else if healthy < total {
		status.Status = "degraded"
	}

	writeJSON(w, statusCode, status)
}

func (h *Handler) runChecks(ctx context.Context) (Status, int, int) {
	checks := make(map[string]ComponentHealth, len(h.checkers))
	healthy := 0

	for name, checker := range h.checkers {
		start := time.Now()
		err := checker.Health(ctx)
		elapsed := time.Since(start)

		if err != nil {
			h.log.Error("Store health check failed", "store", name, "error", err, "elapsed", elapsed)
			checks[name] = ComponentHealth{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}
			continue
		}

		healthy++
		checks[name] = ComponentHealth{
			Status:       "healthy",
			ResponseTime: elapsed.String(),
		}
	}

	return Status{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}, healthy, len(h.checkers)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
