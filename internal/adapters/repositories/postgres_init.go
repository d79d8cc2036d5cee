package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the postgres schema for the time-window cache, the only
// subsystem-owned persisted shape. Rows are keyed by interval; the
// optimal_window index serves "which interval won" lookups.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTimeWindowsQuery := `
	CREATE TABLE IF NOT EXISTS delivery_time_windows (
		interval TEXT PRIMARY KEY,
		estimates JSONB NOT NULL,
		average_duration NUMERIC(10,2) NOT NULL,
		traffic_conditions JSONB NOT NULL,
		optimal_window TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createOptimalIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delivery_time_windows_optimal
	ON delivery_time_windows(optimal_window);
	`

	statements := []string{
		createTimeWindowsQuery,
		createOptimalIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
