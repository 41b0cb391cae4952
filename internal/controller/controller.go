// Package controller composes position tracking, seeking, source transitions
// and frame jumps around a single engine.
//
// A Controller is not safe for concurrent use. All calls, and all engine and
// timer callbacks, must run on the same loop; see playback.Service for the
// goroutine-safe facade.
package controller

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/framejump"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/position"
	"github.com/llehouerou/reelcheck/internal/seek"
	"github.com/llehouerou/reelcheck/internal/transition"
)

// Config holds controller settings.
type Config struct {
	FrameRate  float64
	Transition transition.Config
	Seek       seek.Config
}

// Observer receives the controller's outbound notifications.
type Observer interface {
	PositionChanged(position.Position)
	MetadataLoaded(transition.Metadata)
	StillChanged(showStill bool)
	TransitionStalled(transition.Stall)
	Failed(op errmsg.Op, source string, err error)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) PositionChanged(position.Position) {}
func (NopObserver) MetadataLoaded(transition.Metadata) {}
func (NopObserver) StillChanged(bool) {}
func (NopObserver) TransitionStalled(transition.Stall) {}
func (NopObserver) Failed(errmsg.Op, string, error) {}

// Controller owns one engine for its whole lifetime.
type Controller struct {
	eng     engine.Engine
	obs     Observer
	log     logrus.FieldLogger
	tracker *position.Tracker
	seek    *seek.Coordinator
	machine *transition.Machine
	jumps   *framejump.Channel

	// pausing is set between Pause and the end of pause stabilization.
	pausing bool
}

// New wires the components around eng and starts position tracking.
// A nil obs is replaced by NopObserver.
func New(
	eng engine.Engine,
	sched loop.Scheduler,
	cfg Config,
	obs Observer,
	log logrus.FieldLogger,
) *Controller {
	if obs == nil {
		obs = NopObserver{}
	}
	cfg.Seek.FrameRate = cfg.FrameRate

	c := &Controller{eng: eng, obs: obs, log: log}
	c.tracker = position.NewTracker(eng, cfg.FrameRate, log.WithField("component", "position"))
	c.seek = seek.New(eng, sched, cfg.Seek, log.WithField("component", "seek"))
	c.machine = transition.New(eng, sched, c.seek, c.tracker, cfg.Transition, transition.Hooks{
		OnStill:    obs.StillChanged,
		OnMetadata: func(md transition.Metadata) {
			c.tracker.SetPlaying(!md.Paused)
			obs.MetadataLoaded(md)
		},
		OnStall:    obs.TransitionStalled,
		OnError: func(source string, err error) {
			obs.Failed(errmsg.OpSourceLoad, source, err)
		},
	}, log.WithField("component", "transition"))
	c.jumps = framejump.New(c.seek, c.tracker, log.WithField("component", "framejump"))

	c.seek.OnPaused(func() {
		c.pausing = false
		c.tracker.SetPlaying(false)
	})
	c.tracker.OnEnginePause(c.enginePaused)
	c.tracker.OnChange(obs.PositionChanged)
	c.tracker.SetPlaying(!eng.Paused())
	c.tracker.Subscribe()
	return c
}

// SetSource requests a transition to source.
func (c *Controller) SetSource(source string) {
	c.machine.Request(source)
}

// Scrub pauses and moves to frame, clamped into range once the duration is
// known.
func (c *Controller) Scrub(frame int) {
	pos := c.tracker.Position()
	upper := frame
	if pos.Known() {
		upper = pos.FrameCount()
	}
	frame = lo.Clamp(frame, 0, max(upper, 0))
	c.seek.HandleScrub(frame)
	c.tracker.SetCurrentTime(position.FrameTime(frame, pos.FrameRate))
	c.tracker.SetPlaying(false)
}

// StepFrame pauses and moves delta frames from the current one.
func (c *Controller) StepFrame(delta int) {
	c.Scrub(c.tracker.Position().CurrentFrame() + delta)
}

// JumpToFrame submits an external frame-jump command. Reports whether the
// jump was applied; jumps issued before the duration is known are dropped.
func (c *Controller) JumpToFrame(frame int) bool {
	return c.jumps.Submit(frame)
}

// Play resumes playback.
func (c *Controller) Play() error {
	if err := c.eng.Play(); err != nil {
		c.obs.Failed(errmsg.OpPlaybackStart, c.machine.Actual(), err)
		return fmt.Errorf("play: %w", err)
	}
	c.pausing = false
	c.tracker.SetPlaying(true)
	return nil
}

// Pause pauses playback and snaps to the nearest frame boundary. Outside a
// transition the playing flag is cleared once pause stabilization settles.
func (c *Controller) Pause() error {
	if err := c.eng.Pause(); err != nil {
		c.obs.Failed(errmsg.OpPlaybackPause, c.machine.Actual(), err)
		return fmt.Errorf("pause: %w", err)
	}
	if c.machine.Transitioning() {
		c.tracker.SetPlaying(false)
		return nil
	}
	c.pausing = true
	c.seek.HandlePause()
	return nil
}

// enginePaused handles a pause the engine made on its own. A pause the
// controller issued is left to stabilization.
func (c *Controller) enginePaused() {
	if c.pausing {
		return
	}
	c.log.WithField("source", c.machine.Actual()).Debug("engine paused")
	c.tracker.SetPlaying(false)
}

// Toggle switches between playing and paused.
func (c *Controller) Toggle() error {
	if c.eng.Paused() {
		return c.Play()
	}
	return c.Pause()
}

// SetLoop turns looping on or off when the engine supports it.
func (c *Controller) SetLoop(on bool) {
	if l, ok := c.eng.(engine.Looper); ok {
		l.SetLoop(on)
	}
}

// SetMuted silences the engine when it supports it.
func (c *Controller) SetMuted(on bool) {
	if m, ok := c.eng.(engine.Muter); ok {
		m.SetMuted(on)
	}
}

// Position returns the current playback position.
func (c *Controller) Position() position.Position {
	return c.tracker.Position()
}

// ShowStill reports whether the frozen last frame should be shown.
func (c *Controller) ShowStill() bool {
	return c.machine.ShowStill()
}

// Transitioning reports whether a source transition is in progress.
func (c *Controller) Transitioning() bool {
	return c.machine.Transitioning()
}

// TransitionState returns the transition phase.
func (c *Controller) TransitionState() transition.State {
	return c.machine.State()
}

// Generation returns the current transition generation.
func (c *Controller) Generation() uint64 {
	return c.machine.Generation()
}

// Source returns the latest requested source.
func (c *Controller) Source() string {
	return c.machine.Pending()
}

// Close stops tracking and detaches from the engine.
func (c *Controller) Close() {
	c.tracker.Unsubscribe()
	c.machine.Close()
}
