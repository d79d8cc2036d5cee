package dto

import "geo-intel-service/internal/domain"

type ValidateAddressRequest struct {
	Address     string `json:"address"`
	CountryCode string `json:"country_code"`
}

type ValidateBatchRequest struct {
	Addresses   []string `json:"addresses"`
	CountryCode string   `json:"country_code"`
}

type BatchItemResponse struct {
	Address string                   `json:"address"`
	Result  *domain.ValidationResult `json:"result,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Success bool                     `json:"success"`
}

type ValidateBatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

type ReverseGeocodeRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
