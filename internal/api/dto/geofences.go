package dto

import "geo-intel-service/internal/domain"

type GeofenceRequest struct {
	Name        string              `json:"name"`
	Coordinates []domain.Coordinate `json:"coordinates"`
}

type ContainsResponse struct {
	GeofenceID string            `json:"geofence_id"`
	Point      domain.Coordinate `json:"point"`
	Inside     bool              `json:"inside"`
}

type AnalyzeHotspotsRequest struct {
	Timeframe string                  `json:"timeframe"`
	History   []domain.DeliveryRecord `json:"history,omitempty"`
	// UseEventStream pulls history from the delivery-event topic instead
	// of the request body.
	UseEventStream bool `json:"use_event_stream,omitempty"`
}

type AnalyzeHotspotsResponse struct {
	Clusters []domain.Cluster `json:"clusters"`
}
