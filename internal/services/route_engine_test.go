package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"geo-intel-service/internal/adapters/maps"
	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"
)

func TestCalculateRoute(t *testing.T) {
	provider := &maps.FakeProvider{
		GetDirectionsFunc: func(ctx context.Context, origin, destination string, waypoints []string) (ports.DirectionsResult, error) {
			if origin != "A" || destination != "B" {
				t.Errorf("got %q -> %q, want A -> B", origin, destination)
			}
			return ports.DirectionsResult{
				DistanceMeters:  4200,
				DurationSeconds: 600,
				Polyline:        "abc123",
				Steps: []domain.RouteStep{
					{Instruction: "Head north", DistanceMeters: 4200, DurationSeconds: 600},
				},
			}, nil
		},
	}
	engine := NewRouteEngine(provider, nil, DefaultOptimizationPolicy(), nil)

	route, err := engine.CalculateRoute(context.Background(), "A", "B", []string{"W1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.DistanceMeters != 4200 || route.DurationSeconds != 600 {
		t.Errorf("route = %+v, want distance 4200 / duration 600", route)
	}
	if len(route.Steps) != 1 {
		t.Errorf("steps = %d, want 1", len(route.Steps))
	}
	if route.Polyline != "abc123" {
		t.Errorf("polyline = %q, want abc123", route.Polyline)
	}
}

func TestCalculateRouteNotFound(t *testing.T) {
	provider := &maps.FakeProvider{
		GetDirectionsFunc: func(ctx context.Context, origin, destination string, waypoints []string) (ports.DirectionsResult, error) {
			return ports.DirectionsResult{}, domain.ErrRouteNotFound
		},
	}
	engine := NewRouteEngine(provider, nil, DefaultOptimizationPolicy(), nil)

	_, err := engine.CalculateRoute(context.Background(), "A", "B", nil)
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("error = %v, want ErrRouteNotFound", err)
	}
}

func TestOptimizeOrdersByDistance(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)
	driver := domain.Coordinate{Lat: 0, Lng: 0}
	stops := []domain.DeliveryStop{
		{ID: "far", Location: domain.Coordinate{Lat: 0, Lng: 0.5}},
		{ID: "near", Location: domain.Coordinate{Lat: 0, Lng: 0.1}},
		{ID: "mid", Location: domain.Coordinate{Lat: 0, Lng: 0.3}},
	}

	out, err := engine.OptimizeMultipleDeliveries(driver, stops, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotOrder := []string{out[0].ID, out[1].ID, out[2].ID}
	wantOrder := []string{"near", "mid", "far"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}

	for i, s := range out {
		if s.Sequence != i+1 {
			t.Errorf("stop %d sequence = %d, want %d", i, s.Sequence, i+1)
		}
	}
	if out[2].CumulativeDistanceMeters != out[0].LegDistanceMeters+out[1].LegDistanceMeters+out[2].LegDistanceMeters {
		t.Error("cumulative distance must be the sum of the legs")
	}
}

func TestOptimizeTieBreaksByStopID(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)
	driver := domain.Coordinate{Lat: 0, Lng: 0}
	// Equidistant stops east and west of the driver.
	stops := []domain.DeliveryStop{
		{ID: "b", Location: domain.Coordinate{Lat: 0, Lng: 0.2}},
		{ID: "a", Location: domain.Coordinate{Lat: 0, Lng: -0.2}},
	}

	for range 10 {
		out, err := engine.OptimizeMultipleDeliveries(driver, stops, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out[0].ID != "a" || out[1].ID != "b" {
			t.Fatalf("tie must resolve to ascending id order, got %q, %q", out[0].ID, out[1].ID)
		}
	}
}

func TestOptimizePremiumBonusPullsStopForward(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)
	driver := domain.Coordinate{Lat: 0, Lng: 0}
	// Premium stop is ~330m farther than the standard one; the 500m bonus
	// should still win it the first slot.
	stops := []domain.DeliveryStop{
		{ID: "standard", Location: domain.Coordinate{Lat: 0, Lng: 0.01}, CustomerTier: domain.TierStandard},
		{ID: "premium", Location: domain.Coordinate{Lat: 0, Lng: 0.013}, CustomerTier: domain.TierPremium},
	}

	out, err := engine.OptimizeMultipleDeliveries(driver, stops, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ID != "premium" {
		t.Fatalf("first stop = %q, want premium", out[0].ID)
	}
}

func TestOptimizeImminentWindowPullsStopForward(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)
	driver := domain.Coordinate{Lat: 0, Lng: 0}
	departAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	soon := departAt.Add(10 * time.Minute)

	// ~2.2km extra detour; the near-full 3000m urgency bonus outweighs it.
	stops := []domain.DeliveryStop{
		{ID: "relaxed", Location: domain.Coordinate{Lat: 0, Lng: 0.01}},
		{ID: "urgent", Location: domain.Coordinate{Lat: 0, Lng: 0.03}, TimeWindow: &soon},
	}

	out, err := engine.OptimizeMultipleDeliveries(driver, stops, departAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ID != "urgent" {
		t.Fatalf("first stop = %q, want urgent", out[0].ID)
	}
}

func TestOptimizeValueBonusIsCapped(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)

	low := engine.stopBonus(domain.DeliveryStop{Value: 50}, time.Now())
	if low != 500 {
		t.Errorf("bonus for value 50 = %v, want 500", low)
	}
	high := engine.stopBonus(domain.DeliveryStop{Value: 10000}, time.Now())
	if high != 2000 {
		t.Errorf("bonus for value 10000 = %v, want cap 2000", high)
	}
}

func TestOptimizeETAChain(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)
	driver := domain.Coordinate{Lat: 0, Lng: 0}
	departAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	stops := []domain.DeliveryStop{
		{ID: "s1", Location: domain.Coordinate{Lat: 0, Lng: 0.05}},
		{ID: "s2", Location: domain.Coordinate{Lat: 0, Lng: 0.1}},
	}

	out, err := engine.OptimizeMultipleDeliveries(driver, stops, departAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out[0].ETA.After(departAt) {
		t.Error("first ETA must be after departure")
	}
	if !out[1].ETA.After(out[0].ETA) {
		t.Error("ETAs must be monotonically increasing along the route")
	}
}

func TestOptimizeValidatesInput(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)

	if _, err := engine.OptimizeMultipleDeliveries(domain.Coordinate{Lat: 91, Lng: 0}, nil, time.Now()); err == nil {
		t.Error("out-of-range driver location must be rejected")
	}

	bad := []domain.DeliveryStop{{ID: "x", Location: domain.Coordinate{Lat: 0, Lng: 181}}}
	if _, err := engine.OptimizeMultipleDeliveries(domain.Coordinate{}, bad, time.Now()); err == nil {
		t.Error("out-of-range stop location must be rejected")
	}

	out, err := engine.OptimizeMultipleDeliveries(domain.Coordinate{}, nil, time.Now())
	if err != nil || len(out) != 0 {
		t.Errorf("empty input should yield an empty plan, got %v, %v", out, err)
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	engine := NewRouteEngine(&maps.FakeProvider{}, nil, DefaultOptimizationPolicy(), nil)
	stops := []domain.DeliveryStop{
		{ID: "far", Location: domain.Coordinate{Lat: 0, Lng: 0.5}},
		{ID: "near", Location: domain.Coordinate{Lat: 0, Lng: 0.1}},
	}

	if _, err := engine.OptimizeMultipleDeliveries(domain.Coordinate{}, stops, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stops[0].ID != "far" || stops[1].ID != "near" {
		t.Error("input slice must not be reordered")
	}
}
