package domain

import "time"

// TimeWindowEstimate is the expected delivery duration for one named
// interval of the day, averaged across the requested destinations.
type TimeWindowEstimate struct {
	Interval               string   `json:"interval"`
	AverageDurationSeconds int      `json:"average_duration_seconds"`
	TrafficConditions      string   `json:"traffic_conditions"`
	FailedDestinations     []string `json:"failed_destinations,omitempty"`
}

// DeliveryTimeWindowReport collects the per-interval estimates and names the
// interval with the minimum average duration. Rows are persisted to an
// external cache keyed by interval; the report itself is built fresh per call.
type DeliveryTimeWindowReport struct {
	Origin        string               `json:"origin"`
	Estimates     []TimeWindowEstimate `json:"estimates"`
	OptimalWindow string               `json:"optimal_window"`
	GeneratedAt   time.Time            `json:"generated_at"`
}
