package repositories

import (
	"context"
	"fmt"
	"sync"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"
)

// MemoryGeofenceRepository is an in-process store for tests and local runs
// without redis. Records are copied on the way in and out so callers never
// alias stored state.
type MemoryGeofenceRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Geofence
}

func NewMemoryGeofenceRepository() *MemoryGeofenceRepository {
	return &MemoryGeofenceRepository{byID: make(map[string]domain.Geofence)}
}

var _ ports.GeofenceRepository = (*MemoryGeofenceRepository)(nil)

func (r *MemoryGeofenceRepository) Get(ctx context.Context, id string) (*domain.Geofence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("geofence store: id %q: %w", id, domain.ErrGeofenceNotFound)
	}
	out := cloneGeofence(g)
	return &out, nil
}

func (r *MemoryGeofenceRepository) Put(ctx context.Context, g *domain.Geofence) error {
	if g == nil || g.ID == "" {
		return fmt.Errorf("geofence store: geofence must have an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[g.ID] = cloneGeofence(*g)
	return nil
}

func (r *MemoryGeofenceRepository) List(ctx context.Context) ([]*domain.Geofence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Geofence, 0, len(r.byID))
	for _, g := range r.byID {
		c := cloneGeofence(g)
		out = append(out, &c)
	}
	return out, nil
}

func cloneGeofence(g domain.Geofence) domain.Geofence {
	ring := make([]domain.Coordinate, len(g.Coordinates))
	copy(ring, g.Coordinates)
	g.Coordinates = ring
	return g
}
