package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetSession() (*SessionState, error)
	SaveSession(state SessionState)
	GetPrefs() (Prefs, error)
	SavePrefs(p Prefs) error
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Manager)(nil)
	_ Interface = (*Mock)(nil)
)
