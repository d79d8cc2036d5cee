package handlers

import (
	"net/http"
	"time"

	"geo-intel-service/internal/api/dto"
	"geo-intel-service/internal/services"
)

type RouteHandler struct {
	Engine *services.RouteEngine
}

// Calculate runs a single provider-backed route lookup.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	route, err := h.Engine.CalculateRoute(r.Context(), req.Origin, req.Destination, req.Waypoints)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, route)
}

// Optimize orders delivery stops for a driver route.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeDeliveriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Deliveries) == 0 {
		writeError(w, r, http.StatusBadRequest, "deliveries is required")
		return
	}

	departAt := time.Now().UTC()
	if req.DepartAt != nil {
		departAt = *req.DepartAt
	}

	stops, err := h.Engine.OptimizeMultipleDeliveries(req.DriverLocation, req.Deliveries, departAt)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeDeliveriesResponse{Stops: stops})
}

// TimeWindows reports per-interval delivery duration estimates.
func (h *RouteHandler) TimeWindows(w http.ResponseWriter, r *http.Request) {
	var req dto.TimeWindowsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Destinations) == 0 {
		writeError(w, r, http.StatusBadRequest, "destinations is required")
		return
	}

	report, err := h.Engine.CalculateDeliveryTimeWindows(r.Context(), req.Origin, req.Destinations)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}
