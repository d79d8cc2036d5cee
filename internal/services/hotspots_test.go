package services

import (
	"context"
	"testing"
	"time"

	"geo-intel-service/internal/adapters/maps"
	"geo-intel-service/internal/domain"
)

// recordsAround produces n records in a tight pocket around (lat, lng),
// offset by ~10m each, delivered at the given hour.
func recordsAround(lat, lng float64, n, hour int, ts time.Time) []domain.DeliveryRecord {
	out := make([]domain.DeliveryRecord, 0, n)
	for i := range n {
		out = append(out, domain.DeliveryRecord{
			Location:  domain.Coordinate{Lat: lat + float64(i)*0.0001, Lng: lng},
			Timestamp: time.Date(ts.Year(), ts.Month(), ts.Day(), hour, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestDBSCANSingleDensePocket(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 40.7128, Lng: -74.0060},
		{Lat: 40.7130, Lng: -74.0061},
		{Lat: 40.7132, Lng: -74.0059},
		{Lat: 40.7129, Lng: -74.0062},
	}

	groups := DefaultDBSCAN().Cluster(points)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if len(groups[0]) != len(points) {
		t.Errorf("cluster size = %d, want all %d points", len(groups[0]), len(points))
	}
}

func TestDBSCANExcludesNoise(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 40.7128, Lng: -74.0060},
		{Lat: 40.7130, Lng: -74.0061},
		{Lat: 40.7132, Lng: -74.0059},
		// Isolated point well outside the 500m radius.
		{Lat: 40.8500, Lng: -74.0060},
	}

	groups := DefaultDBSCAN().Cluster(points)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if len(groups[0]) != 3 {
		t.Errorf("cluster size = %d, want 3 (noise excluded)", len(groups[0]))
	}
	for _, idx := range groups[0] {
		if idx == 3 {
			t.Error("isolated point must be labeled noise, not clustered")
		}
	}
}

func TestDBSCANBelowMinPtsIsAllNoise(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 40.7128, Lng: -74.0060},
		{Lat: 40.7130, Lng: -74.0061},
	}

	groups := DefaultDBSCAN().Cluster(points)
	if len(groups) != 0 {
		t.Fatalf("groups = %d, want 0 for a pair below MinPts", len(groups))
	}
}

func TestDBSCANSeparatesDistantPockets(t *testing.T) {
	var points []domain.Coordinate
	for _, rec := range recordsAround(40.7128, -74.0060, 3, 10, time.Now()) {
		points = append(points, rec.Location)
	}
	for _, rec := range recordsAround(40.7600, -73.9800, 3, 10, time.Now()) {
		points = append(points, rec.Location)
	}

	groups := DefaultDBSCAN().Cluster(points)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	for _, g := range groups {
		if len(g) != 3 {
			t.Errorf("cluster size = %d, want 3", len(g))
		}
	}
}

func TestAnalyzeDeliveryHotspots(t *testing.T) {
	now := time.Now().UTC()
	history := recordsAround(40.7128, -74.0060, 4, 14, now)

	placesCalled := false
	provider := &maps.FakeProvider{
		NearbySearchFunc: func(ctx context.Context, center domain.Coordinate, radius, limit int) ([]domain.Place, error) {
			placesCalled = true
			return []domain.Place{{Name: "Corner Deli", Location: center, Category: "restaurant"}}, nil
		},
	}
	analyzer := NewHotspotAnalyzer(DefaultDBSCAN(), provider, 500, 5)

	clusters, err := analyzer.AnalyzeDeliveryHotspots(context.Background(), history, domain.TimeframeWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(clusters))
	}

	c := clusters[0]
	if len(c.Points) != 4 {
		t.Errorf("member records = %d, want 4", len(c.Points))
	}
	if c.PopularTimes[14] != 4 {
		t.Errorf("popular times hour 14 = %d, want 4", c.PopularTimes[14])
	}
	for h, count := range c.PopularTimes {
		if h != 14 && count != 0 {
			t.Errorf("popular times hour %d = %d, want 0", h, count)
		}
	}
	if !placesCalled {
		t.Error("POI enrichment should have run")
	}
	if len(c.NearbyPlaces) != 1 || c.NearbyPlaces[0].Name != "Corner Deli" {
		t.Errorf("nearby places = %v, want Corner Deli", c.NearbyPlaces)
	}

	// Centroid stays inside the pocket.
	if c.Center.DistanceMeters(history[0].Location) > 100 {
		t.Errorf("center %v too far from the pocket", c.Center)
	}
}

func TestAnalyzeDeliveryHotspotsTimeframeFilter(t *testing.T) {
	now := time.Now().UTC()
	recent := recordsAround(40.7128, -74.0060, 3, 9, now)
	var stale []domain.DeliveryRecord
	for _, rec := range recordsAround(40.7128, -74.0060, 3, 9, now) {
		rec.Timestamp = now.AddDate(0, 0, -10)
		stale = append(stale, rec)
	}

	analyzer := NewHotspotAnalyzer(DefaultDBSCAN(), nil, 500, 0)

	clusters, err := analyzer.AnalyzeDeliveryHotspots(context.Background(), append(recent, stale...), domain.TimeframeDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(clusters))
	}
	if len(clusters[0].Points) != 3 {
		t.Errorf("member records = %d, want only the 3 recent ones", len(clusters[0].Points))
	}

	// Custom keeps the batch as given.
	clusters, err = analyzer.AnalyzeDeliveryHotspots(context.Background(), append(recent, stale...), domain.TimeframeCustom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters[0].Points) != 6 {
		t.Errorf("custom timeframe member records = %d, want 6", len(clusters[0].Points))
	}
}

func TestAnalyzeDeliveryHotspotsUnknownTimeframe(t *testing.T) {
	analyzer := NewHotspotAnalyzer(DefaultDBSCAN(), nil, 500, 0)

	if _, err := analyzer.AnalyzeDeliveryHotspots(context.Background(), nil, domain.Timeframe("yearly")); err == nil {
		t.Fatal("unknown timeframe must be rejected")
	}
}

func TestAnalyzeDeliveryHotspotsEnrichmentFailureIsNonFatal(t *testing.T) {
	now := time.Now().UTC()
	provider := &maps.FakeProvider{
		NearbySearchFunc: func(ctx context.Context, center domain.Coordinate, radius, limit int) ([]domain.Place, error) {
			return nil, domain.ErrServiceUnavailable
		},
	}
	analyzer := NewHotspotAnalyzer(DefaultDBSCAN(), provider, 500, 5)

	clusters, err := analyzer.AnalyzeDeliveryHotspots(context.Background(), recordsAround(40.7128, -74.0060, 3, 11, now), domain.TimeframeMonthly)
	if err != nil {
		t.Fatalf("enrichment failure must not fail the analysis: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(clusters))
	}
	if len(clusters[0].NearbyPlaces) != 0 {
		t.Errorf("nearby places = %v, want none", clusters[0].NearbyPlaces)
	}
}

func TestAnalyzeDeliveryHotspotsEmptyHistory(t *testing.T) {
	analyzer := NewHotspotAnalyzer(DefaultDBSCAN(), nil, 500, 0)

	clusters, err := analyzer.AnalyzeDeliveryHotspots(context.Background(), nil, domain.TimeframeWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 0 {
		t.Errorf("clusters = %d, want 0", len(clusters))
	}
}
