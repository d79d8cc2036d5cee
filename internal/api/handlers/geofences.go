package handlers

import (
	"net/http"
	"strconv"

	"geo-intel-service/internal/api/dto"
	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/services"
)

type GeofenceHandler struct {
	Engine *services.GeofenceEngine
}

func (h *GeofenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.GeofenceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.Engine.CreateGeofence(r.Context(), req.Name, req.Coordinates)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, g)
}

func (h *GeofenceHandler) List(w http.ResponseWriter, r *http.Request) {
	fences, err := h.Engine.ListGeofences(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if fences == nil {
		fences = []*domain.Geofence{}
	}
	writeJSON(w, r, http.StatusOK, fences)
}

func (h *GeofenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.Engine.GetGeofence(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, g)
}

func (h *GeofenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.GeofenceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.Engine.UpdateGeofence(r.Context(), r.PathValue("id"), req.Name, req.Coordinates)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, g)
}

func (h *GeofenceHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeactivateGeofence(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Contains answers the point-in-delivery-area test. The point arrives as
// lat/lng query parameters since this is a read.
func (h *GeofenceHandler) Contains(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(w, r, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	point := domain.Coordinate{Lat: lat, Lng: lng}
	id := r.PathValue("id")

	inside, err := h.Engine.IsPointInDeliveryArea(r.Context(), point, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ContainsResponse{
		GeofenceID: id,
		Point:      point,
		Inside:     inside,
	})
}
