package ports

import (
	"context"
	"geo-intel-service/internal/domain"
)

// One persisted time-window cache row. This is the only externally-persisted
// shape owned by this service; rows are keyed by interval.
type TimeWindowRow struct {
	Interval               string
	Estimate               domain.TimeWindowEstimate
	AverageDurationSeconds int
	TrafficConditions      string
	OptimalWindow          string
}

// Port: write-through cache for delivery time-window reports. Writes are
// best-effort; callers log failures rather than failing the report.
type TimeWindowCache interface {
	// PutReport upserts one row per interval in the report.
	PutReport(ctx context.Context, report *domain.DeliveryTimeWindowReport) error
	// Get returns the cached row for an interval, if present.
	Get(ctx context.Context, interval string) (*TimeWindowRow, bool, error)
}
