package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the geocode cache schema.
// The statement is dialect-neutral and runs unchanged on SQLite and
// Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        label TEXT NOT NULL
    );
	`

	if _, err := tx.Exec(createGeocodeCacheQuery); err != nil {
		return fmt.Errorf("init schema: exec statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
