// Package metrics centralizes the Prometheus instruments so adapters and
// services share one registry via the default global.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_provider_requests_total",
		Help: "Total mapping provider requests by operation",
	}, []string{"op"})
	ProviderFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_provider_failures_total",
		Help: "Total failed mapping provider requests by operation",
	}, []string{"op"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geo_provider_duration_ms",
		Help:    "Mapping provider call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"op"})
	GeofenceStoreHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geo_geofence_store_hits_total",
		Help: "Total geofence store lookups that found a record",
	})
	GeofenceStoreMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geo_geofence_store_misses_total",
		Help: "Total geofence store lookups for unknown ids",
	})
	HealthCheckTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_health_check_total",
		Help: "Health check runs by check name and outcome",
	}, []string{"check", "status"})
)

func init() {
	prometheus.MustRegister(
		ProviderRequestsTotal,
		ProviderFailuresTotal,
		ProviderDurationMs,
		GeofenceStoreHitsTotal,
		GeofenceStoreMissesTotal,
		HealthCheckTotal,
	)
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
