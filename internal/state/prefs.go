package state

import (
	"database/sql"
	"errors"
)

// Prefs are the review toggles that survive restarts.
type Prefs struct {
	Loop    bool
	Muted   bool
	Overlay bool // frame counter overlay
}

// DefaultPrefs are used until preferences are first saved.
var DefaultPrefs = Prefs{Overlay: true}

func getPrefs(db *sql.DB) (Prefs, error) {
	var p Prefs
	row := db.QueryRow(`SELECT loop, muted, overlay FROM review_prefs WHERE id = 1`)
	err := row.Scan(&p.Loop, &p.Muted, &p.Overlay)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPrefs, nil
	}
	if err != nil {
		return Prefs{}, err
	}
	return p, nil
}

func savePrefs(db *sql.DB, p Prefs) error {
	_, err := db.Exec(`
		INSERT INTO review_prefs (id, loop, muted, overlay)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			loop = excluded.loop,
			muted = excluded.muted,
			overlay = excluded.overlay
	`, p.Loop, p.Muted, p.Overlay)
	return err
}
