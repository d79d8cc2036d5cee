package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// A closed polygon ring needs at least a triangle plus the repeated
// closing vertex.
const minRingVertices = 4

// Geofence is a named spatial zone bounded by a closed polygon ring
// (first vertex == last vertex). Deactivation is a logical delete.
type Geofence struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Coordinates []Coordinate `json:"coordinates"`
	Center      Coordinate   `json:"center"`
	Area        float64      `json:"area"`
	Active      bool         `json:"active"`
}

// NewGeofence validates the ring and derives center and area.
func NewGeofence(name string, ring []Coordinate) (*Geofence, error) {
	if err := ValidateRing(ring); err != nil {
		return nil, err
	}
	return &Geofence{
		ID:          uuid.NewString(),
		Name:        name,
		Coordinates: cloneRing(ring),
		Center:      ringCentroid(ring),
		Area:        ringArea(ring),
		Active:      true,
	}, nil
}

// Update replaces the ring and name, re-validating geometry and recomputing
// the derived center and area. The geofence is untouched on failure.
func (g *Geofence) Update(name string, ring []Coordinate) error {
	if err := ValidateRing(ring); err != nil {
		return err
	}
	g.Name = name
	g.Coordinates = cloneRing(ring)
	g.Center = ringCentroid(ring)
	g.Area = ringArea(ring)
	return nil
}

// ValidateRing enforces the ring invariants: at least four vertices
// (including the repeated closing vertex), closure, and in-range coordinates.
func ValidateRing(ring []Coordinate) error {
	if len(ring) < minRingVertices {
		return fmt.Errorf("ring has %d vertices, need at least %d: %w",
			len(ring), minRingVertices, ErrInvalidGeometry)
	}
	first, last := ring[0], ring[len(ring)-1]
	if first != last {
		return fmt.Errorf("ring is not closed (first %v != last %v): %w",
			first, last, ErrInvalidGeometry)
	}
	for i, c := range ring {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("ring vertex %d: %v: %w", i, err, ErrInvalidGeometry)
		}
	}
	return nil
}

// Contains reports whether p lies inside the polygon, using a ray cast
// along the longitude axis. Points exactly on an edge may fall either way.
func (g *Geofence) Contains(p Coordinate) bool {
	verts := g.Coordinates[:len(g.Coordinates)-1]
	inside := false
	j := len(verts) - 1
	for i := 0; i < len(verts); i++ {
		vi, vj := verts[i], verts[j]
		if (vi.Lng > p.Lng) != (vj.Lng > p.Lng) &&
			p.Lat < (vj.Lat-vi.Lat)*(p.Lng-vi.Lng)/(vj.Lng-vi.Lng)+vi.Lat {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ringCentroid is the arithmetic mean of the distinct vertices. This is a
// deliberate approximation of the area-weighted centroid: it is what
// dependent code expects, and it is adequate for the roughly-convex zones
// this service manages. Highly concave rings will skew it.
func ringCentroid(ring []Coordinate) Coordinate {
	verts := ring[:len(ring)-1]
	var lat, lng float64
	for _, v := range verts {
		lat += v.Lat
		lng += v.Lng
	}
	n := float64(len(verts))
	return Coordinate{Lat: lat / n, Lng: lng / n}
}

// ringArea is the absolute shoelace sum halved, in squared degrees.
func ringArea(ring []Coordinate) float64 {
	verts := ring[:len(ring)-1]
	var sum float64
	for i := range verts {
		j := (i + 1) % len(verts)
		sum += verts[i].Lng*verts[j].Lat - verts[j].Lng*verts[i].Lat
	}
	return math.Abs(sum) / 2
}

func cloneRing(ring []Coordinate) []Coordinate {
	out := make([]Coordinate, len(ring))
	copy(out, ring)
	return out
}
