package dto

import (
	"time"

	"geo-intel-service/internal/domain"
)

type RouteRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Waypoints   []string `json:"waypoints,omitempty"`
}

type OptimizeDeliveriesRequest struct {
	DriverLocation domain.Coordinate     `json:"driver_location"`
	Deliveries     []domain.DeliveryStop `json:"deliveries"`
	// DepartAt anchors ETAs and time-window urgency; defaults to now.
	DepartAt *time.Time `json:"depart_at,omitempty"`
}

type OptimizeDeliveriesResponse struct {
	Stops []domain.OptimizedStop `json:"stops"`
}

type TimeWindowsRequest struct {
	Origin       string   `json:"origin"`
	Destinations []string `json:"destinations"`
}
