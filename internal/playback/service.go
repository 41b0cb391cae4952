package playback

import (
	"errors"
	"time"

	"github.com/llehouerou/reelcheck/internal/position"
)

var (
	// ErrClosed is returned by every command once the service is closed.
	ErrClosed = errors.New("playback service closed")
	// ErrSourceIndex is returned when selecting a source outside the list.
	ErrSourceIndex = errors.New("source index out of range")
)

// Service defines the playback service contract.
//
// It is the goroutine-safe face of the controller: every command runs on the
// controller's loop and returns once applied. Queries read a snapshot kept up
// to date from the controller's notifications.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Toggle() error
	Scrub(frame int) error               // pause and move to frame
	StepFrame(delta int) error           // pause and move delta frames
	JumpToFrame(frame int) (bool, error) // external one-shot jump
	SeekTo(position time.Duration) error // frame-snapped scrub by time
	SetLoop(on bool) error
	SetMuted(on bool) error

	// Source control
	SetSource(url string) error
	SelectSource(index int) error
	NextSource() error
	PreviousSource() error

	// State queries
	State() State
	IsPlaying() bool
	Position() position.Position
	Metadata() (MetadataChange, bool)
	ShowStill() bool
	Loop() bool
	Muted() bool
	CurrentSource() Source
	SourceIndex() int
	Sources() []Source

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
