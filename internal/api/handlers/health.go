package handlers

import (
	"net/http"

	"geo-intel-service/internal/services"
)

type HealthHandler struct {
	Monitor *services.HealthMonitor
}

// Status reports the latest synthetic-check results. Unhealthy services
// answer 503 so load balancers can rotate them out.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	overall := "healthy"
	if !h.Monitor.Healthy() {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	writeJSON(w, r, status, map[string]any{
		"status": overall,
		"checks": h.Monitor.Snapshot(),
	})
}
