package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent; every statement may be re-run on startup.
var migrations = []string{
	// Flat key-value storage: every entity is one JSON record.
	// Keys are namespaced: profile, plan:<date>, sleep_history:<date>,
	// sleep_session:<id>, log:<stream>:<id>.
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	)`,
	// Prefix scans (per-stream log listing, per-date lookups) walk the
	// primary key index; nothing further needed for this schema.
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
