package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/platform/obs"
	"geo-intel-service/internal/ports"
)

// OptimizationPolicy tunes the weighted nearest-neighbor heuristic. Each
// bonus is expressed in meters subtracted from a stop's travel distance, so
// weights trade off directly against detour length. These are policy knobs,
// not business law; defaults are a starting point.
type OptimizationPolicy struct {
	// Stops whose time window falls inside this horizon earn an urgency
	// bonus that grows as the window approaches.
	TimeWindowHorizon     time.Duration
	TimeWindowBonusMeters float64

	PremiumBonusMeters float64

	// Declared-value bonus: meters per currency unit, capped.
	ValueBonusMetersPerUnit float64
	ValueBonusCapMeters     float64

	// Average driving speed used to turn leg distances into ETAs.
	AverageSpeedMetersPerSec float64
}

func DefaultOptimizationPolicy() OptimizationPolicy {
	return OptimizationPolicy{
		TimeWindowHorizon:        2 * time.Hour,
		TimeWindowBonusMeters:    3000,
		PremiumBonusMeters:       500,
		ValueBonusMetersPerUnit:  10,
		ValueBonusCapMeters:      2000,
		AverageSpeedMetersPerSec: 8.33, // ~30 km/h urban driving
	}
}

// RouteEngine computes provider-backed routes, orders multi-stop driver
// routes, and estimates delivery time windows. Stateless per call beyond
// its read-only policy; safe for concurrent use.
type RouteEngine struct {
	directions ports.DirectionsProvider
	cache      ports.TimeWindowCache
	policy     OptimizationPolicy
	intervals  []TrafficInterval
}

func NewRouteEngine(directions ports.DirectionsProvider, cache ports.TimeWindowCache, policy OptimizationPolicy, intervals []TrafficInterval) *RouteEngine {
	if len(intervals) == 0 {
		intervals = DefaultTrafficIntervals()
	}
	return &RouteEngine{
		directions: directions,
		cache:      cache,
		policy:     policy,
		intervals:  intervals,
	}
}

// CalculateRoute runs a single provider lookup for origin -> destination
// through the given waypoints.
func (e *RouteEngine) CalculateRoute(ctx context.Context, origin, destination string, waypoints []string) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "routes.CalculateRoute")(&err)

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, errors.New("calculate route: origin and destination must be non-empty")
	}

	res, err := e.directions.GetDirections(ctx, origin, destination, waypoints)
	if err != nil {
		return nil, fmt.Errorf("calculate route %q -> %q: %w", origin, destination, err)
	}

	return &domain.Route{
		Origin:          origin,
		Destination:     destination,
		Waypoints:       waypoints,
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Polyline:        res.Polyline,
		Steps:           res.Steps,
		TrafficModel:    "best_guess",
	}, nil
}

// OptimizeMultipleDeliveries orders stops with a weighted nearest-neighbor
// heuristic: starting at the driver location, repeatedly pick the unvisited
// stop minimizing haversine distance minus its bonus. Ties break by stop id
// ascending, so identical inputs always produce identical orderings. This
// is a heuristic, not a TSP solver; only reproducibility is guaranteed.
//
// departAt anchors both the ETA chain and time-window urgency; passing it in
// keeps the ordering free of wall-clock reads. The input slice is not mutated.
func (e *RouteEngine) OptimizeMultipleDeliveries(driver domain.Coordinate, stops []domain.DeliveryStop, departAt time.Time) ([]domain.OptimizedStop, error) {
	if err := driver.Validate(); err != nil {
		return nil, fmt.Errorf("optimize deliveries: driver location: %w", err)
	}
	if len(stops) == 0 {
		return []domain.OptimizedStop{}, nil
	}

	remaining := make([]domain.DeliveryStop, len(stops))
	copy(remaining, stops)
	for _, s := range remaining {
		if err := s.Location.Validate(); err != nil {
			return nil, fmt.Errorf("optimize deliveries: stop %q: %w", s.ID, err)
		}
	}

	current := driver
	eta := departAt
	cumulative := 0.0
	out := make([]domain.OptimizedStop, 0, len(remaining))

	for len(remaining) > 0 {
		bestIdx := -1
		bestScore := math.Inf(1)

		for i, s := range remaining {
			score := current.DistanceMeters(s.Location) - e.stopBonus(s, departAt)
			// Tie-breaker keeps the ordering deterministic when scores match.
			if score < bestScore || (score == bestScore && bestIdx >= 0 && s.ID < remaining[bestIdx].ID) {
				bestScore = score
				bestIdx = i
			}
		}

		best := remaining[bestIdx]
		leg := current.DistanceMeters(best.Location)
		cumulative += leg
		eta = eta.Add(time.Duration(leg/e.policy.AverageSpeedMetersPerSec) * time.Second)

		out = append(out, domain.OptimizedStop{
			DeliveryStop:             best,
			Sequence:                 len(out) + 1,
			LegDistanceMeters:        leg,
			CumulativeDistanceMeters: cumulative,
			ETA:                      eta,
		})

		current = best.Location
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return out, nil
}

// stopBonus is the configurable weighted sum rewarding imminent time
// windows, premium customers, and higher declared value.
func (e *RouteEngine) stopBonus(s domain.DeliveryStop, now time.Time) float64 {
	p := e.policy
	var bonus float64

	if s.TimeWindow != nil && p.TimeWindowHorizon > 0 {
		remaining := s.TimeWindow.Sub(now)
		switch {
		case remaining <= 0:
			bonus += p.TimeWindowBonusMeters
		case remaining < p.TimeWindowHorizon:
			urgency := 1 - float64(remaining)/float64(p.TimeWindowHorizon)
			bonus += p.TimeWindowBonusMeters * urgency
		}
	}

	if s.CustomerTier == domain.TierPremium {
		bonus += p.PremiumBonusMeters
	}

	if s.Value > 0 {
		bonus += math.Min(s.Value*p.ValueBonusMetersPerUnit, p.ValueBonusCapMeters)
	}

	return bonus
}
