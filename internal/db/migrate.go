package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// full list is re-run on every startup; "duplicate column name" errors
// from ALTER TABLE on an already-migrated database are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                    INTEGER PRIMARY KEY,
		username              TEXT NOT NULL DEFAULT '',
		first_name            TEXT NOT NULL DEFAULT '',
		last_name             TEXT NOT NULL DEFAULT '',
		city_name             TEXT NOT NULL DEFAULT '',
		timezone              TEXT NOT NULL DEFAULT '',
		sleep_goal            REAL CHECK(sleep_goal IS NULL OR (sleep_goal > 0 AND sleep_goal <= 24)),
		wake_time             TEXT,
		has_provided_location INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sleep_records (
		id         TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		sleep_time TEXT NOT NULL,
		wake_time  TEXT,
		quality    INTEGER CHECK(quality IS NULL OR (quality BETWEEN 1 AND 5)),
		mood       INTEGER CHECK(mood IS NULL OR (mood BETWEEN 1 AND 5)),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sleep_records_user ON sleep_records(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sleep_records_sleep_time ON sleep_records(sleep_time)`,

	// At most one open record per user.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sleep_records_open
		ON sleep_records(user_id) WHERE wake_time IS NULL`,

	`CREATE TABLE IF NOT EXISTS reminders (
		user_id       INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		reminder_time TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
}
