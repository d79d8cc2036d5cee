package domain

import (
	"fmt"
	"time"
)

// DeliveryRecord is one historical delivery event used for hotspot analysis.
type DeliveryRecord struct {
	Location  Coordinate `json:"location"`
	Timestamp time.Time  `json:"timestamp"`
}

// Place is an enriched point of interest near a cluster center.
type Place struct {
	Name     string     `json:"name"`
	Location Coordinate `json:"location"`
	Category string     `json:"category,omitempty"`
	Vicinity string     `json:"vicinity,omitempty"`
}

// Cluster is a density-based grouping of delivery records. It is derived,
// ephemeral, and recomputed on demand; it is never persisted here.
// PopularTimes counts member deliveries per hour of day.
type Cluster struct {
	Center       Coordinate       `json:"center"`
	Points       []DeliveryRecord `json:"points"`
	PopularTimes [24]int          `json:"popular_times"`
	NearbyPlaces []Place          `json:"nearby_places,omitempty"`
}

// Timeframe selects how much delivery history feeds hotspot analysis.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	// TimeframeCustom keeps the batch as given; the caller has already
	// selected the range.
	TimeframeCustom Timeframe = "custom"
)

// Window returns the history cutoff for the timeframe relative to now.
// The second return is false when no cutoff applies (custom).
func (t Timeframe) Window(now time.Time) (time.Time, bool, error) {
	switch t {
	case TimeframeDaily:
		return now.AddDate(0, 0, -1), true, nil
	case TimeframeWeekly:
		return now.AddDate(0, 0, -7), true, nil
	case TimeframeMonthly:
		return now.AddDate(0, 0, -30), true, nil
	case TimeframeCustom:
		return time.Time{}, false, nil
	default:
		return time.Time{}, false, fmt.Errorf("unknown timeframe %q", string(t))
	}
}
