package handler

import (
	"fmt"
	"net/http"

	"github.com/footballnews/landing/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "# TYPE relay_requests_total counter\n")
	for _, c := range snap.Requests {
		writeMetric(w, "relay_requests_total{relay=%q,outcome=%q} %d\n", c.Relay, c.Outcome, c.Count)
	}

	writeMetric(w, "# TYPE relay_upstream_duration_seconds summary\n")
	for _, d := range snap.Durations {
		writeMetric(w, "relay_upstream_duration_seconds_count{relay=%q} %d\n", d.Relay, d.Count)
		writeMetric(w, "relay_upstream_duration_seconds_sum{relay=%q} %.6f\n", d.Relay, float64(d.TotalNs)/1e9)
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
