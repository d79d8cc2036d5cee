package domain

import "time"

// One navigation instruction within a route.
type RouteStep struct {
	Instruction     string `json:"instruction"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

// Route is a provider-computed connection between two points, optionally
// through ordered waypoints. It is created per request; callers may cache it
// keyed by (origin, destination, waypoints, traffic model, day part).
type Route struct {
	Origin          string      `json:"origin"`
	Destination     string      `json:"destination"`
	Waypoints       []string    `json:"waypoints,omitempty"`
	DistanceMeters  int         `json:"distance_meters"`
	DurationSeconds int         `json:"duration_seconds"`
	Polyline        string      `json:"polyline,omitempty"`
	Steps           []RouteStep `json:"steps,omitempty"`
	TrafficModel    string      `json:"traffic_model,omitempty"`
}

type CustomerTier string

const (
	TierStandard CustomerTier = "standard"
	TierPremium  CustomerTier = "premium"
)

// DeliveryStop is one input to multi-stop optimization. The optimizer
// returns an ordering; it never mutates the stop itself.
type DeliveryStop struct {
	ID           string       `json:"id"`
	Location     Coordinate   `json:"location"`
	TimeWindow   *time.Time   `json:"time_window,omitempty"`
	CustomerTier CustomerTier `json:"customer_tier,omitempty"`
	Value        float64      `json:"value,omitempty"`
}

// OptimizedStop is a DeliveryStop placed into a driver route, with the
// running distance and arrival estimate up to and including that stop.
type OptimizedStop struct {
	DeliveryStop
	Sequence                 int       `json:"sequence"`
	LegDistanceMeters        float64   `json:"leg_distance_meters"`
	CumulativeDistanceMeters float64   `json:"cumulative_distance_meters"`
	ETA                      time.Time `json:"eta"`
}
