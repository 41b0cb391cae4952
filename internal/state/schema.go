package state

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

// Single-row tables: the CHECK keeps one prefs and one session row.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS review_prefs (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		loop INTEGER NOT NULL DEFAULT 0,
		muted INTEGER NOT NULL DEFAULT 0,
		overlay INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS review_session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		source_url TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

func initSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
