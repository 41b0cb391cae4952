package playback

import (
	"time"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/position"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// SourceChange is emitted when a different source is requested.
//
// It fires on the request, not when the new source is revealed: watch
// StillChanged for the reveal. A burst of requests emits one SourceChange per
// request even though only the last one is loaded.
type SourceChange struct {
	Previous   Source
	Current    Source
	Index      int // -1 when the source is not in the configured list
	Generation uint64
}

// PositionChange is emitted when the tracked position changes.
type PositionChange struct {
	Position position.Position
}

// MetadataChange is emitted as soon as a loaded source's metadata is known.
type MetadataChange struct {
	Duration         float64
	Dimensions       engine.Dimensions
	ActualDimensions engine.Dimensions
	Paused           bool
}

// StillChange is emitted when the frozen frame is shown or hidden.
type StillChange struct {
	ShowStill bool
}

// StallEvent is emitted when a transition was revealed by the safety timeout
// because the new source never became playable.
type StallEvent struct {
	Source     string
	Generation uint64
	Elapsed    time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation errmsg.Op
	Source    string // source URL if applicable
	Err       error
}

// Message returns the user-facing error text.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Operation, e.Source, e.Err)
}
