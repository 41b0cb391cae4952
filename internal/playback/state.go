package playback

// State is the coarse playback state shown to users and over MPRIS.
type State int

const (
	StateStopped State = iota // no source requested yet
	StatePlaying
	StatePaused
)

var stateNames = [...]string{
	StateStopped: "stopped",
	StatePlaying: "playing",
	StatePaused:  "paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText makes structured log fields carry the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// HasSource reports whether a source has been requested.
func (s State) HasSource() bool {
	return s != StateStopped
}
