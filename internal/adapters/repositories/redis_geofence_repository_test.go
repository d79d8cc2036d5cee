package repositories

import (
	"context"
	"errors"
	"testing"

	"geo-intel-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisRepo(t *testing.T) *RedisGeofenceRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisGeofenceRepository(client)
}

func testGeofence(t *testing.T, name string) *domain.Geofence {
	t.Helper()
	g, err := domain.NewGeofence(name, []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: 0},
		{Lat: 0, Lng: 0},
	})
	if err != nil {
		t.Fatalf("new geofence: %v", err)
	}
	return g
}

func TestRedisGeofenceRoundTrip(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()
	fence := testGeofence(t, "downtown")

	if err := repo.Put(ctx, fence); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, fence.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "downtown" || !got.Active {
		t.Errorf("got %+v", got)
	}
	if len(got.Coordinates) != len(fence.Coordinates) {
		t.Errorf("ring lost in round trip: %d vs %d vertices", len(got.Coordinates), len(fence.Coordinates))
	}
	if got.Center != fence.Center || got.Area != fence.Area {
		t.Errorf("derived fields lost: %+v vs %+v", got, fence)
	}
}

func TestRedisGeofenceNotFound(t *testing.T) {
	repo := newRedisRepo(t)

	_, err := repo.Get(context.Background(), "missing-id")
	if !errors.Is(err, domain.ErrGeofenceNotFound) {
		t.Fatalf("error = %v, want ErrGeofenceNotFound", err)
	}

	_, err = repo.Get(context.Background(), "")
	if !errors.Is(err, domain.ErrGeofenceNotFound) {
		t.Fatalf("empty id error = %v, want ErrGeofenceNotFound", err)
	}
}

func TestRedisGeofencePutOverwrites(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()
	fence := testGeofence(t, "before")

	if err := repo.Put(ctx, fence); err != nil {
		t.Fatalf("put: %v", err)
	}
	fence.Name = "after"
	fence.Active = false
	if err := repo.Put(ctx, fence); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := repo.Get(ctx, fence.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "after" || got.Active {
		t.Errorf("got %+v, want overwritten record", got)
	}
}

func TestRedisGeofenceList(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if err := repo.Put(ctx, testGeofence(t, name)); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}

	fences, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fences) != 3 {
		t.Fatalf("list = %d fences, want 3", len(fences))
	}

	names := map[string]bool{}
	for _, f := range fences {
		names[f.Name] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !names[want] {
			t.Errorf("list missing fence %q", want)
		}
	}
}

func TestRedisGeofenceRejectsMissingID(t *testing.T) {
	repo := newRedisRepo(t)

	if err := repo.Put(context.Background(), &domain.Geofence{}); err == nil {
		t.Fatal("put without id must fail")
	}
	if err := repo.Put(context.Background(), nil); err == nil {
		t.Fatal("nil geofence must fail")
	}
}
