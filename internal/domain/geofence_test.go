package domain

import (
	"errors"
	"math"
	"testing"
)

func squareRing() []Coordinate {
	return []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: 0},
		{Lat: 0, Lng: 0},
	}
}

func TestNewGeofenceSquare(t *testing.T) {
	g, err := NewGeofence("downtown", squareRing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.ID == "" {
		t.Error("expected a generated id")
	}
	if !g.Active {
		t.Error("new geofence should be active")
	}
	if g.Center.Lat != 0.5 || g.Center.Lng != 0.5 {
		t.Errorf("center = %v, want (0.5, 0.5)", g.Center)
	}
	if math.Abs(g.Area-1.0) > 1e-9 {
		t.Errorf("area = %v, want 1", g.Area)
	}
}

func TestNewGeofenceRejectsOpenRing(t *testing.T) {
	ring := squareRing()
	ring[len(ring)-1] = Coordinate{Lat: 0.1, Lng: 0}

	_, err := NewGeofence("broken", ring)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("error = %v, want ErrInvalidGeometry", err)
	}
}

func TestNewGeofenceRejectsTooFewVertices(t *testing.T) {
	ring := []Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 0}}

	_, err := NewGeofence("line", ring)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("error = %v, want ErrInvalidGeometry", err)
	}
}

func TestNewGeofenceRejectsOutOfRangeVertex(t *testing.T) {
	ring := squareRing()
	ring[1] = Coordinate{Lat: 95, Lng: 1}
	ring[len(ring)-1] = ring[0]

	_, err := NewGeofence("bad-vertex", ring)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("error = %v, want ErrInvalidGeometry", err)
	}
}

func TestContains(t *testing.T) {
	g, err := NewGeofence("downtown", squareRing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.Contains(Coordinate{Lat: 0.5, Lng: 0.5}) {
		t.Error("(0.5, 0.5) should be inside the unit square")
	}
	if g.Contains(Coordinate{Lat: 2, Lng: 2}) {
		t.Error("(2, 2) should be outside the unit square")
	}
}

// Membership must not depend on which vertex the ring starts at.
func TestContainsInvariantUnderVertexRotation(t *testing.T) {
	base := squareRing()
	verts := base[:len(base)-1]

	inside := Coordinate{Lat: 0.25, Lng: 0.75}
	outside := Coordinate{Lat: 1.5, Lng: 0.5}

	for start := 0; start < len(verts); start++ {
		rotated := make([]Coordinate, 0, len(base))
		for i := 0; i < len(verts); i++ {
			rotated = append(rotated, verts[(start+i)%len(verts)])
		}
		rotated = append(rotated, rotated[0])

		g, err := NewGeofence("rotated", rotated)
		if err != nil {
			t.Fatalf("start=%d: unexpected error: %v", start, err)
		}
		if !g.Contains(inside) {
			t.Errorf("start=%d: %v should be inside", start, inside)
		}
		if g.Contains(outside) {
			t.Errorf("start=%d: %v should be outside", start, outside)
		}
	}
}

// The centroid of a regular polygon must test as inside it.
func TestCenterIsInside(t *testing.T) {
	g, err := NewGeofence("downtown", squareRing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Contains(g.Center) {
		t.Errorf("center %v should be inside its own geofence", g.Center)
	}
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	g, err := NewGeofence("zone", squareRing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bigger := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 2},
		{Lat: 2, Lng: 2},
		{Lat: 2, Lng: 0},
		{Lat: 0, Lng: 0},
	}
	if err := g.Update("zone-v2", bigger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Name != "zone-v2" {
		t.Errorf("name = %q, want zone-v2", g.Name)
	}
	if g.Center.Lat != 1 || g.Center.Lng != 1 {
		t.Errorf("center = %v, want (1, 1)", g.Center)
	}
	if math.Abs(g.Area-4.0) > 1e-9 {
		t.Errorf("area = %v, want 4", g.Area)
	}
}

func TestUpdateLeavesGeofenceUntouchedOnInvalidRing(t *testing.T) {
	g, err := NewGeofence("zone", squareRing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	open := []Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 3}, {Lat: 3, Lng: 3}, {Lat: 3, Lng: 0}}
	if err := g.Update("zone-v2", open); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("error = %v, want ErrInvalidGeometry", err)
	}

	if g.Name != "zone" {
		t.Errorf("name changed to %q on failed update", g.Name)
	}
	if math.Abs(g.Area-1.0) > 1e-9 {
		t.Errorf("area changed to %v on failed update", g.Area)
	}
}
