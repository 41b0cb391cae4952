package transition

// State is the phase of a source transition.
//
//	        request             debounce              canplay
//	Idle ───────────▶ Debouncing ────────▶ Loading ───────────┐
//	 ▲                   ▲ │ request          │ canplay        │ (no seek)
//	 │                   └─┘                  ▼ (seek issued)  │
//	 │                                     SeekWait            │
//	 │                                        │ seeked         │
//	 │           2nd presented frame          ▼                │
//	 └───────────────────────────────── Confirming ◀──────────┘
//
// A request in any state restarts at Debouncing under a new generation.
// The safety timeout returns any non-Idle state to Idle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateLoading
	StateSeekWait
	StateConfirming
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDebouncing:
		return "Debouncing"
	case StateLoading:
		return "Loading"
	case StateSeekWait:
		return "SeekWait"
	case StateConfirming:
		return "Confirming"
	default:
		return "Unknown"
	}
}
