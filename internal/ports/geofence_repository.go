package ports

import (
	"context"
	"geo-intel-service/internal/domain"
)

// Port: a boundary for storing and retrieving Geofence entities.
type GeofenceRepository interface {
	// Get returns the geofence by id, or domain.ErrGeofenceNotFound.
	Get(ctx context.Context, id string) (*domain.Geofence, error)
	// Put creates or replaces the geofence.
	Put(ctx context.Context, g *domain.Geofence) error
	// List returns all stored geofences, active or not.
	List(ctx context.Context) ([]*domain.Geofence, error)
}
