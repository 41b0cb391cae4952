// Package engine defines the playback engine contract the controller drives.
//
// An engine decodes and renders one source at a time. It is owned by a single
// controller and is only ever called from that controller's loop goroutine;
// implementations that produce events on other goroutines must post them onto
// the loop before invoking listeners or frame callbacks.
package engine

import "errors"

// ErrUnknownSource is returned by SetSource when the engine cannot resolve a URL.
var ErrUnknownSource = errors.New("unknown source")

// Event is an engine lifecycle notification.
type Event int

const (
	// EventLoadedMetadata fires once duration and dimensions are known.
	EventLoadedMetadata Event = iota
	// EventCanPlay fires once the current source can present frames.
	EventCanPlay
	// EventSeeked fires when a seek has completed.
	EventSeeked
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventLoadedMetadata:
		return "loadedmetadata"
	case EventCanPlay:
		return "canplay"
	case EventSeeked:
		return "seeked"
	default:
		return "unknown"
	}
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// IsZero reports whether no size is known.
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// FrameRequest identifies a pending presented-frame callback.
type FrameRequest uint64

// Engine is the capability set the controller consumes.
type Engine interface {
	SetSource(url string) error
	Play() error
	Pause() error

	// CurrentTime and SetCurrentTime are in seconds. Setting the time seeks.
	CurrentTime() float64
	SetCurrentTime(t float64)
	// Duration is NaN until metadata has loaded.
	Duration() float64
	Paused() bool
	HasMetadata() bool

	// VideoSize is the intrinsic size of the decoded frames.
	VideoSize() Dimensions
	// DisplaySize is the size after aspect and rotation correction.
	DisplaySize() Dimensions

	// On registers fn for every occurrence of ev and returns a remover.
	On(ev Event, fn func()) (remove func())
	// Once registers fn for the next occurrence of ev only.
	Once(ev Event, fn func())

	// RequestPresentedFrame invokes cb once, for the next frame the engine
	// actually presents, with that frame's media time. It must be
	// re-registered to keep receiving frames.
	RequestPresentedFrame(cb func(mediaTime float64)) FrameRequest
	CancelPresentedFrame(id FrameRequest)
}

// Looper is implemented by engines that can restart a source at its end.
type Looper interface {
	SetLoop(on bool)
}

// Muter is implemented by engines with an audio output to silence.
type Muter interface {
	SetMuted(on bool)
}
