package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/platform/obs"
	"geo-intel-service/internal/ports"
)

// PostgresTimeWindowCache persists delivery time-window estimates, one row
// per interval. Estimates and traffic conditions are stored as opaque JSON
// blobs; external consumers read these rows, this service only writes and
// refreshes them.
type PostgresTimeWindowCache struct {
	DB *sql.DB
}

func NewPostgresTimeWindowCache(db *sql.DB) *PostgresTimeWindowCache {
	return &PostgresTimeWindowCache{DB: db}
}

var _ ports.TimeWindowCache = (*PostgresTimeWindowCache)(nil)

// PutReport upserts one row per interval in the report.
func (c *PostgresTimeWindowCache) PutReport(ctx context.Context, report *domain.DeliveryTimeWindowReport) (err error) {
	defer obs.Time(ctx, "timewindow.cache.PutReport")(&err)

	if c.DB == nil {
		return errors.New("time window cache: db is nil")
	}
	if report == nil || len(report.Estimates) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert time window cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO delivery_time_windows (interval, estimates, average_duration, traffic_conditions, optimal_window, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (interval) DO UPDATE
	SET estimates = EXCLUDED.estimates,
		average_duration = EXCLUDED.average_duration,
		traffic_conditions = EXCLUDED.traffic_conditions,
		optimal_window = EXCLUDED.optimal_window,
		updated_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert time window cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, est := range report.Estimates {
		estimateJSON, err := json.Marshal(est)
		if err != nil {
			return fmt.Errorf("insert time window cache interval=%q: marshal estimate: %w", est.Interval, err)
		}
		conditionsJSON, err := json.Marshal(map[string]string{"conditions": est.TrafficConditions})
		if err != nil {
			return fmt.Errorf("insert time window cache interval=%q: marshal conditions: %w", est.Interval, err)
		}

		if _, err := stmt.ExecContext(ctx,
			est.Interval, estimateJSON, est.AverageDurationSeconds, conditionsJSON, report.OptimalWindow,
		); err != nil {
			return fmt.Errorf("insert time window cache interval=%q: %w", est.Interval, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert time window cache commit: %w", err)
	}

	return nil
}

// Get fetches the cached row for one interval.
func (c *PostgresTimeWindowCache) Get(ctx context.Context, interval string) (*ports.TimeWindowRow, bool, error) {
	if c.DB == nil {
		return nil, false, errors.New("time window cache: db is nil")
	}

	q := `
	SELECT interval, estimates, average_duration, traffic_conditions, optimal_window
	FROM delivery_time_windows
	WHERE interval = $1;
	`

	var (
		row            ports.TimeWindowRow
		estimateJSON   []byte
		conditionsJSON []byte
		avgDuration    float64
	)
	err := c.DB.QueryRowContext(ctx, q, interval).Scan(
		&row.Interval, &estimateJSON, &avgDuration, &conditionsJSON, &row.OptimalWindow,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get time window cache interval=%q: %w", interval, err)
	}

	if err := json.Unmarshal(estimateJSON, &row.Estimate); err != nil {
		return nil, false, fmt.Errorf("get time window cache interval=%q: decode estimate: %w", interval, err)
	}
	var conditions map[string]string
	if err := json.Unmarshal(conditionsJSON, &conditions); err != nil {
		return nil, false, fmt.Errorf("get time window cache interval=%q: decode conditions: %w", interval, err)
	}
	row.TrafficConditions = conditions["conditions"]
	row.AverageDurationSeconds = int(avgDuration)

	return &row, true, nil
}
