// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionToggleLoop    Action = "toggle_loop"
	ActionToggleMute    Action = "toggle_mute"
	ActionToggleOverlay Action = "toggle_overlay"

	// Frame actions
	ActionStepForward     Action = "step_forward"
	ActionStepBack        Action = "step_back"
	ActionStepForwardLong Action = "step_forward_long"
	ActionStepBackLong    Action = "step_back_long"
	ActionFirstFrame      Action = "first_frame"
	ActionLastFrame       Action = "last_frame"
	ActionJumpToFrame     Action = "jump_to_frame" // opens the frame prompt

	// Source actions
	ActionNextSource   Action = "next_source"
	ActionPrevSource   Action = "prev_source"
	ActionSelectSource Action = "select_source" // 1-9, index from the key
)
