package services

import (
	"context"
	"log"
	"sync"
	"time"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/metrics"
)

// HealthCheck is one synthetic probe. It must be cheap: throwaway geocode,
// throwaway geometry.
type HealthCheck func(ctx context.Context) error

type CheckStatus struct {
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// HealthMonitor runs registered checks on a timer. Each run gets its own
// timeout so probe latency never eats into user-facing call budgets.
type HealthMonitor struct {
	interval time.Duration
	timeout  time.Duration

	mu       sync.RWMutex
	checks   map[string]HealthCheck
	statuses map[string]CheckStatus
}

func NewHealthMonitor(interval, timeout time.Duration) *HealthMonitor {
	return &HealthMonitor{
		interval: interval,
		timeout:  timeout,
		checks:   make(map[string]HealthCheck),
		statuses: make(map[string]CheckStatus),
	}
}

func (m *HealthMonitor) Register(name string, check HealthCheck) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[name] = check
}

// Run probes immediately, then on every tick, until ctx is done.
func (m *HealthMonitor) Run(ctx context.Context) {
	m.runChecks(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.runChecks(ctx)
		}
	}
}

func (m *HealthMonitor) runChecks(ctx context.Context) {
	m.mu.RLock()
	checks := make(map[string]HealthCheck, len(m.checks))
	for name, c := range m.checks {
		checks[name] = c
	}
	m.mu.RUnlock()

	for name, check := range checks {
		cctx, cancel := context.WithTimeout(ctx, m.timeout)
		err := check(cctx)
		cancel()

		status := CheckStatus{Healthy: err == nil, CheckedAt: time.Now().UTC()}
		if err != nil {
			status.Error = err.Error()
			log.Printf("health check failed check=%s err=%v", name, err)
			metrics.HealthCheckTotal.WithLabelValues(name, "unhealthy").Inc()
		} else {
			metrics.HealthCheckTotal.WithLabelValues(name, "healthy").Inc()
		}

		m.mu.Lock()
		m.statuses[name] = status
		m.mu.Unlock()
	}
}

// Healthy reports whether every registered check passed its last run.
// A check that has not run yet counts as unhealthy.
func (m *HealthMonitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.statuses) < len(m.checks) {
		return false
	}
	for _, s := range m.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

func (m *HealthMonitor) Snapshot() map[string]CheckStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]CheckStatus, len(m.statuses))
	for name, s := range m.statuses {
		out[name] = s
	}
	return out
}

// GeometryCheck builds and queries a throwaway unit-square geofence without
// touching storage. It catches regressions in ring validation, centroid
// derivation, and containment.
func GeometryCheck() HealthCheck {
	ring := []domain.Coordinate{
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}, {Lat: 0, Lng: 0},
	}
	return func(ctx context.Context) error {
		g, err := domain.NewGeofence("healthcheck", ring)
		if err != nil {
			return err
		}
		if !g.Contains(g.Center) {
			return domain.ErrInvalidGeometry
		}
		return nil
	}
}

// ResolverCheck validates a well-known address as a synthetic provider probe.
func ResolverCheck(r *AddressResolver, address, countryCode string) HealthCheck {
	return func(ctx context.Context) error {
		_, err := r.ValidateAddress(ctx, address, countryCode)
		return err
	}
}
