package maps

import (
	"context"
	"sync"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"
)

// FakeProvider is a deterministic in-memory provider for tests and local
// runs. Unset hooks behave as an empty provider (zero results, no error).
type FakeProvider struct {
	GeocodeFunc        func(ctx context.Context, address, countryCode string) ([]ports.GeocodeResult, error)
	ReverseGeocodeFunc func(ctx context.Context, lat, lng float64) ([]ports.GeocodeResult, error)
	NearbySearchFunc   func(ctx context.Context, center domain.Coordinate, radiusMeters, limit int) ([]domain.Place, error)
	GetDirectionsFunc  func(ctx context.Context, origin, destination string, waypoints []string) (ports.DirectionsResult, error)

	mu sync.Mutex
	// geocodeCalls records the queries Geocode received, in order.
	geocodeCalls []string
}

// GeocodeCalls returns the geocode queries seen so far.
func (f *FakeProvider) GeocodeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.geocodeCalls))
	copy(out, f.geocodeCalls)
	return out
}

var (
	_ ports.GeocodingProvider  = (*FakeProvider)(nil)
	_ ports.PlacesProvider     = (*FakeProvider)(nil)
	_ ports.DirectionsProvider = (*FakeProvider)(nil)
)

func (f *FakeProvider) Geocode(ctx context.Context, address, countryCode string) ([]ports.GeocodeResult, error) {
	f.mu.Lock()
	f.geocodeCalls = append(f.geocodeCalls, address)
	f.mu.Unlock()
	if f.GeocodeFunc == nil {
		return nil, nil
	}
	return f.GeocodeFunc(ctx, address, countryCode)
}

func (f *FakeProvider) ReverseGeocode(ctx context.Context, lat, lng float64) ([]ports.GeocodeResult, error) {
	if f.ReverseGeocodeFunc == nil {
		return nil, nil
	}
	return f.ReverseGeocodeFunc(ctx, lat, lng)
}

func (f *FakeProvider) NearbySearch(ctx context.Context, center domain.Coordinate, radiusMeters, limit int) ([]domain.Place, error) {
	if f.NearbySearchFunc == nil {
		return nil, nil
	}
	return f.NearbySearchFunc(ctx, center, radiusMeters, limit)
}

func (f *FakeProvider) GetDirections(ctx context.Context, origin, destination string, waypoints []string) (ports.DirectionsResult, error) {
	if f.GetDirectionsFunc == nil {
		return ports.DirectionsResult{}, nil
	}
	return f.GetDirectionsFunc(ctx, origin, destination, waypoints)
}
