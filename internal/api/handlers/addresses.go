package handlers

import (
	"net/http"
	"strings"

	"geo-intel-service/internal/api/dto"
	"geo-intel-service/internal/services"
)

type AddressHandler struct {
	Resolver *services.AddressResolver
}

// Validate resolves one free-text address to a confidence-scored result.
func (h *AddressHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	result, err := h.Resolver.ValidateAddress(r.Context(), req.Address, req.CountryCode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// ValidateBatch resolves many addresses with per-item failure isolation.
func (h *AddressHandler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Addresses) == 0 {
		writeError(w, r, http.StatusBadRequest, "addresses is required")
		return
	}

	items, err := h.Resolver.ValidateMultipleAddresses(r.Context(), req.Addresses, req.CountryCode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ValidateBatchResponse{Results: make([]dto.BatchItemResponse, 0, len(items))}
	for _, item := range items {
		out := dto.BatchItemResponse{
			Address: item.Address,
			Result:  item.Result,
			Success: item.Success,
		}
		if item.Err != nil {
			out.Error = item.Err.Error()
		}
		res.Results = append(res.Results, out)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ReverseGeocode resolves a coordinate to its best address plus alternatives.
func (h *AddressHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseGeocodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.Resolver.ReverseGeocode(r.Context(), req.Lat, req.Lng)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}
