package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/metrics"
	"geo-intel-service/internal/platform/obs"
	"geo-intel-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const geofenceKeyPrefix = "geofence:"

// RedisGeofenceRepository stores geofences as JSON records keyed by id.
// Records have no TTL: geofences are deleted logically (active=false), not
// by expiry.
type RedisGeofenceRepository struct {
	client *redis.Client
}

func NewRedisGeofenceRepository(client *redis.Client) *RedisGeofenceRepository {
	return &RedisGeofenceRepository{client: client}
}

var _ ports.GeofenceRepository = (*RedisGeofenceRepository)(nil)

func (r *RedisGeofenceRepository) Get(ctx context.Context, id string) (_ *domain.Geofence, err error) {
	defer obs.Time(ctx, "geofence.store.Get")(&err)

	if id == "" {
		return nil, fmt.Errorf("geofence store: empty id: %w", domain.ErrGeofenceNotFound)
	}

	raw, err := r.client.Get(ctx, geofenceKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.GeofenceStoreMissesTotal.Inc()
		return nil, fmt.Errorf("geofence store: id %q: %w", id, domain.ErrGeofenceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("geofence store: get %q: %w", id, err)
	}
	metrics.GeofenceStoreHitsTotal.Inc()

	var g domain.Geofence
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("geofence store: decode %q: %w", id, err)
	}
	return &g, nil
}

func (r *RedisGeofenceRepository) Put(ctx context.Context, g *domain.Geofence) (err error) {
	defer obs.Time(ctx, "geofence.store.Put")(&err)

	if g == nil || g.ID == "" {
		return errors.New("geofence store: geofence must have an id")
	}

	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("geofence store: encode %q: %w", g.ID, err)
	}

	if err := r.client.Set(ctx, geofenceKeyPrefix+g.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("geofence store: set %q: %w", g.ID, err)
	}
	return nil
}

func (r *RedisGeofenceRepository) List(ctx context.Context) (_ []*domain.Geofence, err error) {
	defer obs.Time(ctx, "geofence.store.List")(&err)

	var (
		out    []*domain.Geofence
		cursor uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, geofenceKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("geofence store: scan: %w", err)
		}

		for _, key := range keys {
			raw, err := r.client.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue // deleted between scan and get
			}
			if err != nil {
				return nil, fmt.Errorf("geofence store: get %q: %w", key, err)
			}

			var g domain.Geofence
			if err := json.Unmarshal(raw, &g); err != nil {
				return nil, fmt.Errorf("geofence store: decode %q: %w", key, err)
			}
			out = append(out, &g)
		}

		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}
