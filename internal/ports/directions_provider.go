package ports

import (
	"context"
	"geo-intel-service/internal/domain"
)

// Distance, duration, and geometry for one routed connection.
type DirectionsResult struct {
	DistanceMeters  int
	DurationSeconds int
	Polyline        string
	Steps           []domain.RouteStep
}

// Contract for provider-backed route lookups between free-text locations.
type DirectionsProvider interface {
	// GetDirections routes origin -> destination through the ordered
	// waypoints. Unroutable point sets surface domain.ErrRouteNotFound.
	GetDirections(ctx context.Context, origin, destination string, waypoints []string) (DirectionsResult, error)
}
