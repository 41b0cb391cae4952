package state

import (
	"database/sql"
	"errors"
	"time"
)

// SessionState names the source the last review ended on.
type SessionState struct {
	SourceURL string
	UpdatedAt time.Time
}

func getSession(db *sql.DB) (*SessionState, error) {
	row := db.QueryRow(`
		SELECT source_url, updated_at FROM review_session WHERE id = 1
	`)

	var state SessionState
	var updatedAt int64
	err := row.Scan(&state.SourceURL, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}
	state.UpdatedAt = time.Unix(updatedAt, 0)

	return &state, nil
}

func saveSession(db *sql.DB, state SessionState) error {
	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO review_session (id, source_url, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_url = excluded.source_url,
			updated_at = excluded.updated_at
	`, state.SourceURL, updatedAt.Unix())
	return err
}
