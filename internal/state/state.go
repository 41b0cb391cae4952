// Package state persists review preferences and the last reviewed source
// in a SQLite database under the XDG data directory.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "reelcheck"
	dbFileName   = "reelcheck.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager is the SQLite-backed Interface.
type Manager struct {
	db *sql.DB

	mu      sync.Mutex
	timer   *time.Timer
	pending *SessionState
	saveErr error // last failed debounced save, reported by Close
}

// Open opens the database at its XDG data path.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("locate state db: %w", err)
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at dbPath, creating it if needed.
func OpenPath(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state db %s: %w", dbPath, err)
	}
	return &Manager{db: db}, nil
}

// Close writes any pending session and closes the database.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()

	return errors.Join(m.flush(), m.db.Close())
}

// GetSession returns the last saved session, or nil on first run.
func (m *Manager) GetSession() (*SessionState, error) {
	return getSession(m.db)
}

// SaveSession stores the session after a short quiet period. Source switches
// arrive in bursts; only the last one is written.
func (m *Manager) SaveSession(state SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = &state
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(saveDebounce, func() {
		if err := m.flush(); err != nil {
			m.mu.Lock()
			m.saveErr = err
			m.mu.Unlock()
		}
	})
}

// flush writes the pending session, if any. A failed debounced save is
// returned once.
func (m *Manager) flush() error {
	m.mu.Lock()
	pending, prevErr := m.pending, m.saveErr
	m.pending, m.saveErr = nil, nil
	m.mu.Unlock()

	if pending == nil {
		return prevErr
	}
	if err := saveSession(m.db, *pending); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetPrefs returns the saved preferences, or defaults on first run.
func (m *Manager) GetPrefs() (Prefs, error) {
	return getPrefs(m.db)
}

// SavePrefs stores the preferences immediately.
func (m *Manager) SavePrefs(p Prefs) error {
	return savePrefs(m.db, p)
}
