// Package seek translates time and frame requests into engine seeks.
//
// The Coordinator owns the position memo: the last explicit or stabilized
// playback position, which a source transition restores on the new source.
package seek

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/position"
)

const (
	DefaultEndEpsilon   = time.Millisecond
	DefaultPauseRecheck = 10 * time.Millisecond
)

// Config holds seek tuning.
type Config struct {
	FrameRate float64
	// EndEpsilon keeps restored positions strictly inside the playable range.
	EndEpsilon time.Duration
	// PauseRecheck is the delay before pause stabilization re-verifies.
	PauseRecheck time.Duration
}

// Coordinator issues seeks against one engine.
type Coordinator struct {
	eng   engine.Engine
	sched loop.Scheduler
	cfg   Config
	log   logrus.FieldLogger

	memo             float64
	initialAttempted bool
	transitioning    bool

	pendingTarget    float64
	awaitingMetadata bool

	onPaused func()
}

// New creates a Coordinator. Zero durations in cfg take the defaults.
func New(eng engine.Engine, sched loop.Scheduler, cfg Config, log logrus.FieldLogger) *Coordinator {
	if cfg.EndEpsilon <= 0 {
		cfg.EndEpsilon = DefaultEndEpsilon
	}
	if cfg.PauseRecheck <= 0 {
		cfg.PauseRecheck = DefaultPauseRecheck
	}
	return &Coordinator{
		eng:   eng,
		sched: sched,
		cfg:   cfg,
		log:   log,
	}
}

// OnPaused sets the callback run once pause stabilization has settled.
func (c *Coordinator) OnPaused(fn func()) {
	c.onPaused = fn
}

// Memo returns the position memo in seconds.
func (c *Coordinator) Memo() float64 {
	return c.memo
}

// SetTransitioning tells the coordinator whether a source transition is running.
func (c *Coordinator) SetTransitioning(on bool) {
	c.transitioning = on
}

// ResetInitialAttempt re-arms SeekPreferredInitialPosition for a new transition.
func (c *Coordinator) ResetInitialAttempt() {
	c.initialAttempted = false
}

// SeekToTime seeks to t seconds and records t in the memo.
// Returns false when nothing was issued: invalid t, or t already current.
// Before metadata is available the seek is deferred until it loads.
func (c *Coordinator) SeekToTime(t float64) bool {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		c.log.WithField("target", t).Debug("ignoring invalid seek target")
		return false
	}
	c.memo = t
	if t == c.eng.CurrentTime() {
		return false
	}
	if c.eng.HasMetadata() {
		c.eng.SetCurrentTime(t)
		return true
	}

	c.pendingTarget = t
	if !c.awaitingMetadata {
		c.awaitingMetadata = true
		c.eng.Once(engine.EventLoadedMetadata, c.applyPending)
	}
	return true
}

func (c *Coordinator) applyPending() {
	c.awaitingMetadata = false
	c.log.WithField("target", c.pendingTarget).Debug("applying deferred seek")
	c.eng.SetCurrentTime(c.pendingTarget)
}

// SeekToFrame seeks to frame f.
func (c *Coordinator) SeekToFrame(f int) bool {
	return c.SeekToTime(position.FrameTime(f, c.cfg.FrameRate))
}

// SeekPreferredInitialPosition restores the memo on a freshly loaded source,
// clamped to just before the end. It acts at most once per transition and
// reports whether a seek was issued.
func (c *Coordinator) SeekPreferredInitialPosition() bool {
	if c.initialAttempted {
		return false
	}
	c.initialAttempted = true

	memo := c.memo
	duration := c.eng.Duration()
	if math.IsNaN(memo) || memo < 0 || !position.ValidDuration(duration) {
		return false
	}
	target := math.Min(memo, duration-c.cfg.EndEpsilon.Seconds())
	if target <= 0 {
		return false
	}
	c.log.WithFields(logrus.Fields{
		"memo":   memo,
		"target": target,
	}).Debug("restoring position")
	return c.SeekToTime(target)
}

// HandleScrub pauses and seeks to frame; used for drag-scrubbing.
func (c *Coordinator) HandleScrub(frame int) {
	if err := c.eng.Pause(); err != nil {
		c.log.WithError(err).Warn("pause before scrub failed")
	}
	c.SeekToFrame(frame)
}

// HandlePause snaps the paused engine to the nearest frame boundary.
//
// Engines can stop slightly off-frame, so the boundary is written to the memo
// and seeked to immediately, then verified once more after PauseRecheck in
// case a resume or late seek raced the pause. It does nothing while a
// transition is running: the memo belongs to the incoming source then.
func (c *Coordinator) HandlePause() {
	if c.transitioning {
		return
	}
	observed := c.eng.CurrentTime()
	boundary := position.Snap(observed, c.cfg.FrameRate)
	c.memo = boundary
	c.eng.SetCurrentTime(boundary)

	c.sched.AfterFunc(c.cfg.PauseRecheck, func() {
		if !c.eng.Paused() {
			return
		}
		if !c.transitioning {
			c.eng.SetCurrentTime(boundary)
		}
		c.log.WithFields(logrus.Fields{
			"observed": observed,
			"boundary": boundary,
		}).Debug("pause settled")
		if c.onPaused != nil {
			c.onPaused()
		}
	})
}
