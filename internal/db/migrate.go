package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS; a re-run reports the column
			// as a duplicate.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id            TEXT PRIMARY KEY,
		start_date    TEXT NOT NULL,
		policy        TEXT NOT NULL
		              CHECK(policy IN ('urgency_weighted','fixed_cap','daily_mix')),
		weekday_hours REAL NOT NULL CHECK(weekday_hours >= 0),
		weekend_hours REAL NOT NULL CHECK(weekend_hours >= 0),
		max_daily_hours REAL NOT NULL CHECK(max_daily_hours >= 0),
		feasible      INTEGER NOT NULL DEFAULT 1,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at)`,

	`CREATE TABLE IF NOT EXISTS plan_subjects (
		plan_id        TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		position       INTEGER NOT NULL,
		name           TEXT NOT NULL,
		importance     TEXT NOT NULL DEFAULT 'medium'
		               CHECK(importance IN ('high','medium','low')),
		deadline       TEXT NOT NULL,
		required_hours REAL NOT NULL CHECK(required_hours > 0),
		PRIMARY KEY (plan_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_entries (
		plan_id  TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		day      TEXT NOT NULL,
		position INTEGER NOT NULL,
		subject  TEXT NOT NULL,
		hours    REAL NOT NULL CHECK(hours > 0),
		PRIMARY KEY (plan_id, day, subject)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_entries_plan ON plan_entries(plan_id, day)`,

	// Named plans and time slots arrived after the first release.
	`ALTER TABLE plans ADD COLUMN name TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE plans ADD COLUMN preferred_time_slot TEXT NOT NULL DEFAULT ''`,
}
