package handler

import (
	"net/http"
)

// RelayStatus reports whether a relay has what it needs to reach its upstream.
type RelayStatus interface {
	Configured() bool
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	relays map[string]RelayStatus
}

// NewHealthHandler creates a new HealthHandler for the named relays.
func NewHealthHandler(relays map[string]RelayStatus) *HealthHandler {
	return &HealthHandler{relays: relays}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz reports which relays are configured. A relay without a credential
// only fails its own endpoint, so the probe stays 200 and reports "degraded".
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.relays))
	status := "ok"

	for name, relay := range h.relays {
		if relay != nil && relay.Configured() {
			checks[name] = "ok"
			continue
		}
		checks[name] = "not configured"
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: status,
		Checks: checks,
	})
}
