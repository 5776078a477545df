package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id         TEXT    PRIMARY KEY,
		address    TEXT    NOT NULL,
		city       TEXT    NOT NULL,
		lat        REAL    NOT NULL,
		lng        REAL    NOT NULL,
		price      INTEGER NOT NULL CHECK (price >= 0),
		beds       INTEGER NOT NULL DEFAULT 0,
		baths      INTEGER NOT NULL DEFAULT 0,
		status     TEXT    NOT NULL DEFAULT 'for_sale',
		updated_at TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_updated_at ON listings(updated_at)`,
	`CREATE TABLE IF NOT EXISTS saved_searches (
		id         TEXT    PRIMARY KEY,
		user_id    TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		q          TEXT,
		min_price  INTEGER,
		max_price  INTEGER,
		beds_min   INTEGER,
		baths_min  INTEGER,
		center_lat REAL,
		center_lng REAL,
		radius_km  REAL,
		created_at TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_searches_user ON saved_searches(user_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
