// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Source operations
	OpSourceLoad   Op = "load source"
	OpSourceSwitch Op = "switch source"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackSeek  Op = "seek"
	OpFrameJump     Op = "jump to frame"

	// Engine operations
	OpEngineInit Op = "initialize playback engine"

	// Preferences
	OpPrefsLoad Op = "load preferences"
	OpPrefsSave Op = "save preferences"

	// Configuration
	OpConfigLoad Op = "load configuration"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error pairs a failure with the operation shown to the user.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err tagged with op, or nil when err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
