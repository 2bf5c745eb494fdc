package handlers

import (
	"net/http"

	"media-parser/internal/consumer"
)

// HealthResponse is the body of the /health endpoint.
type HealthResponse struct {
	Status    string                `json:"status"`
	Consumer  consumer.HealthStatus `json:"consumer"`
	Documents int                   `json:"documents"`
}

// HealthCheck reports overall service health: database reachability plus a
// consumer snapshot.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.CountDocuments(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Consumer: h.consumer.GetHealthStatus(),
		})
		return
	}

	h.db.UpdateDBMetrics()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Consumer:  h.consumer.GetHealthStatus(),
		Documents: count,
	})
}

// LivenessCheck reports that the process is up. It never checks
// dependencies, so a wedged database does not get the process restarted.
func (h *Handlers) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessCheck reports whether the service is ready for traffic: the
// initial consume scan must have completed.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if !h.consumer.IsReady() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
