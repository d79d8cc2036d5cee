package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

// TrafficInterval names a part of the day and its congestion model. The
// multiplier scales the provider's baseline duration into an expected
// duration for that interval.
type TrafficInterval struct {
	Name       string
	Multiplier float64
	Conditions string
}

func DefaultTrafficIntervals() []TrafficInterval {
	return []TrafficInterval{
		{Name: "morning", Multiplier: 1.4, Conditions: "heavy"},
		{Name: "midday", Multiplier: 1.0, Conditions: "moderate"},
		{Name: "evening", Multiplier: 1.5, Conditions: "heavy"},
		{Name: "night", Multiplier: 0.8, Conditions: "light"},
	}
}

// CalculateDeliveryTimeWindows estimates, for each configured interval, the
// average travel duration from origin to the destinations, and reports the
// interval with the minimum average as the optimal window.
//
// Baseline durations are fetched per destination in parallel. A destination
// that fails is flagged on every interval estimate without aborting the
// report; the call fails with domain.ErrServiceUnavailable only when every
// destination fails. Rows are written through to the time-window cache,
// with write failures logged rather than surfaced.
func (e *RouteEngine) CalculateDeliveryTimeWindows(ctx context.Context, origin string, destinations []string) (_ *domain.DeliveryTimeWindowReport, err error) {
	defer obs.Time(ctx, "routes.CalculateDeliveryTimeWindows")(&err)

	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, fmt.Errorf("calculate time windows: origin must be non-empty")
	}
	if len(destinations) == 0 {
		return nil, fmt.Errorf("calculate time windows: at least one destination is required")
	}

	baselines := make([]int, len(destinations))
	var mu sync.Mutex
	failed := make([]string, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, dest := range destinations {
		g.Go(func() error {
			res, derr := e.directions.GetDirections(gctx, origin, dest, nil)
			mu.Lock()
			defer mu.Unlock()
			if derr != nil {
				baselines[i] = -1
				failed = append(failed, dest)
				log.Printf("time window baseline failed dest=%q err=%v", dest, derr)
				return nil
			}
			baselines[i] = res.DurationSeconds
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	var sum float64
	for _, d := range baselines {
		if d >= 0 {
			succeeded++
			sum += float64(d)
		}
	}
	if succeeded == 0 {
		return nil, fmt.Errorf("calculate time windows: all %d destinations failed: %w",
			len(destinations), domain.ErrServiceUnavailable)
	}
	avgBaseline := sum / float64(succeeded)

	report := &domain.DeliveryTimeWindowReport{
		Origin:      origin,
		Estimates:   make([]domain.TimeWindowEstimate, 0, len(e.intervals)),
		GeneratedAt: time.Now().UTC(),
	}

	bestAvg := math.Inf(1)
	for _, iv := range e.intervals {
		avg := int(math.Round(avgBaseline * iv.Multiplier))
		// Each estimate gets its own copy so the report values never alias.
		var failedCopy []string
		if len(failed) > 0 {
			failedCopy = append([]string(nil), failed...)
		}
		report.Estimates = append(report.Estimates, domain.TimeWindowEstimate{
			Interval:               iv.Name,
			AverageDurationSeconds: avg,
			TrafficConditions:      iv.Conditions,
			FailedDestinations:     failedCopy,
		})
		// Strict less keeps the earlier interval on ties, so the optimal
		// window is deterministic for a fixed interval order.
		if float64(avg) < bestAvg {
			bestAvg = float64(avg)
			report.OptimalWindow = iv.Name
		}
	}

	if e.cache != nil {
		if cerr := e.cache.PutReport(ctx, report); cerr != nil {
			log.Printf("time window cache write failed: %v", cerr)
		}
	}

	return report, nil
}
