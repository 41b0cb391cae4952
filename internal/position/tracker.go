package position

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/engine"
)

// Tracker mirrors the engine's presented time into Position.
//
// It keeps exactly one presented-frame request outstanding while subscribed,
// renewing it from inside each callback. While suppressed (a source
// transition is in progress) engine-observed times are ignored and the
// current time is only changed through SetCurrentTime.
type Tracker struct {
	eng        engine.Engine
	log        logrus.FieldLogger
	pos        Position
	suppressed bool

	subscribed     bool
	req            engine.FrameRequest
	removeMetadata func()
	onChange       func(Position)
	onEnginePause  func()
}

// NewTracker creates an unsubscribed tracker.
func NewTracker(eng engine.Engine, frameRate float64, log logrus.FieldLogger) *Tracker {
	return &Tracker{
		eng: eng,
		log: log,
		pos: Position{
			Duration:  math.NaN(),
			FrameRate: frameRate,
		},
	}
}

// OnChange sets the callback invoked after every position change.
func (t *Tracker) OnChange(fn func(Position)) {
	t.onChange = fn
}

// OnEnginePause sets the callback invoked when a presented frame finds the
// engine paused while playback is recorded as running, as happens when the
// engine stops itself at the end of a clip.
func (t *Tracker) OnEnginePause(fn func()) {
	t.onEnginePause = fn
}

// Subscribe starts the presented-frame chain and duration sync.
func (t *Tracker) Subscribe() {
	if t.subscribed {
		return
	}
	t.subscribed = true
	t.removeMetadata = t.eng.On(engine.EventLoadedMetadata, t.SyncDuration)
	t.SyncDuration()
	t.req = t.eng.RequestPresentedFrame(t.onFrame)
}

// Unsubscribe cancels the outstanding chain link.
func (t *Tracker) Unsubscribe() {
	if !t.subscribed {
		return
	}
	t.subscribed = false
	t.eng.CancelPresentedFrame(t.req)
	if t.removeMetadata != nil {
		t.removeMetadata()
		t.removeMetadata = nil
	}
}

func (t *Tracker) onFrame(mediaTime float64) {
	if !t.subscribed {
		return
	}
	changed := t.syncDuration()
	if !t.suppressed && !sameTime(mediaTime, t.pos.CurrentTime) {
		t.pos.CurrentTime = mediaTime
		changed = true
	}
	t.req = t.eng.RequestPresentedFrame(t.onFrame)
	if changed {
		t.notify()
	}
	if !t.suppressed && t.pos.IsPlaying && t.eng.Paused() && t.onEnginePause != nil {
		t.onEnginePause()
	}
}

// SyncDuration copies the engine duration if it differs from the tracked one.
func (t *Tracker) SyncDuration() {
	if t.syncDuration() {
		t.notify()
	}
}

func (t *Tracker) syncDuration() bool {
	d := t.eng.Duration()
	if sameTime(d, t.pos.Duration) {
		return false
	}
	t.log.WithField("duration", d).Debug("duration changed")
	t.pos.Duration = d
	return true
}

// SetCurrentTime sets the position directly, regardless of suppression.
func (t *Tracker) SetCurrentTime(v float64) {
	if sameTime(v, t.pos.CurrentTime) {
		return
	}
	t.pos.CurrentTime = v
	t.notify()
}

// SetPlaying records whether playback is running.
func (t *Tracker) SetPlaying(playing bool) {
	if t.pos.IsPlaying == playing {
		return
	}
	t.pos.IsPlaying = playing
	t.notify()
}

// SetSuppressed turns engine-observed time updates off or on.
func (t *Tracker) SetSuppressed(suppressed bool) {
	t.suppressed = suppressed
}

// Suppressed reports whether engine-observed updates are ignored.
func (t *Tracker) Suppressed() bool {
	return t.suppressed
}

// Position returns the current snapshot.
func (t *Tracker) Position() Position {
	return t.pos
}

func (t *Tracker) notify() {
	if t.onChange != nil {
		t.onChange(t.pos)
	}
}
