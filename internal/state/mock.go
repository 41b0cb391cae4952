package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	session  *SessionState
	prefs    Prefs
	hasPrefs bool
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetSession() (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	s := *m.session
	return &s, nil
}

func (m *Mock) SaveSession(state SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &state
}

func (m *Mock) GetPrefs() (Prefs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasPrefs {
		return DefaultPrefs, nil
	}
	return m.prefs, nil
}

func (m *Mock) SavePrefs(p Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = p
	m.hasPrefs = true
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
