package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/platform/obs"
	"geo-intel-service/internal/ports"
)

// GeofenceEngine creates, updates, and queries polygonal geofences.
// Reads are lock-free; create/update/deactivate are serialized per geofence
// id so two operators editing the same zone cannot lose updates.
type GeofenceEngine struct {
	repo ports.GeofenceRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGeofenceEngine(repo ports.GeofenceRepository) *GeofenceEngine {
	return &GeofenceEngine{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

// CreateGeofence validates the ring (closure, >=4 vertices) and stores a new
// active geofence with derived center and area.
func (e *GeofenceEngine) CreateGeofence(ctx context.Context, name string, ring []domain.Coordinate) (_ *domain.Geofence, err error) {
	defer obs.Time(ctx, "geofences.Create")(&err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create geofence: name must be non-empty")
	}

	g, err := domain.NewGeofence(name, ring)
	if err != nil {
		return nil, fmt.Errorf("create geofence %q: %w", name, err)
	}

	if err := e.repo.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("create geofence %q: store: %w", name, err)
	}
	return g, nil
}

// UpdateGeofence re-validates geometry and recomputes center and area under
// the per-id lock.
func (e *GeofenceEngine) UpdateGeofence(ctx context.Context, id, name string, ring []domain.Coordinate) (_ *domain.Geofence, err error) {
	defer obs.Time(ctx, "geofences.Update")(&err)

	lock := e.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update geofence %q: %w", id, err)
	}

	if err := g.Update(name, ring); err != nil {
		return nil, fmt.Errorf("update geofence %q: %w", id, err)
	}

	if err := e.repo.Put(ctx, g); err != nil {
		return nil, fmt.Errorf("update geofence %q: store: %w", id, err)
	}
	return g, nil
}

// DeactivateGeofence logically deletes a geofence. Deactivated fences stop
// answering containment queries but remain stored.
func (e *GeofenceEngine) DeactivateGeofence(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "geofences.Deactivate")(&err)

	lock := e.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := e.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate geofence %q: %w", id, err)
	}
	g.Active = false

	if err := e.repo.Put(ctx, g); err != nil {
		return fmt.Errorf("deactivate geofence %q: store: %w", id, err)
	}
	return nil
}

// ListGeofences returns every stored geofence, deactivated ones included.
func (e *GeofenceEngine) ListGeofences(ctx context.Context) ([]*domain.Geofence, error) {
	fences, err := e.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	return fences, nil
}

// GetGeofence returns a stored geofence by id.
func (e *GeofenceEngine) GetGeofence(ctx context.Context, id string) (*domain.Geofence, error) {
	g, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get geofence %q: %w", id, err)
	}
	return g, nil
}

// IsPointInDeliveryArea runs the ray-casting containment test against the
// named geofence. Unknown and deactivated ids fail with
// domain.ErrGeofenceNotFound.
func (e *GeofenceEngine) IsPointInDeliveryArea(ctx context.Context, point domain.Coordinate, geofenceID string) (bool, error) {
	if err := point.Validate(); err != nil {
		return false, fmt.Errorf("point in delivery area: %w", err)
	}

	g, err := e.repo.Get(ctx, geofenceID)
	if err != nil {
		return false, fmt.Errorf("point in delivery area: %w", err)
	}
	if !g.Active {
		return false, fmt.Errorf("point in delivery area: geofence %q is deactivated: %w",
			geofenceID, domain.ErrGeofenceNotFound)
	}

	return g.Contains(point), nil
}

func (e *GeofenceEngine) lockFor(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}
