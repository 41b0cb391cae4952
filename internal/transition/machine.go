// Package transition swaps the engine's source without a visible flash.
//
// Every desired-source change starts a new generation. Deferred work (timers,
// engine events, presented-frame callbacks) captures the generation it was
// created under and does nothing if a newer one has started since. That check
// is the only cancellation mechanism; the debounce timer is the one scheduled
// action that is replaced outright.
package transition

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/position"
	"github.com/llehouerou/reelcheck/internal/seek"
)

const (
	DefaultDebounce = 150 * time.Millisecond
	DefaultTimeout  = 3000 * time.Millisecond
)

// Config holds transition timing.
type Config struct {
	Debounce time.Duration
	Timeout  time.Duration
}

// Metadata is reported as soon as the engine has loaded a source's metadata.
type Metadata struct {
	Duration         float64
	Dimensions       engine.Dimensions
	ActualDimensions engine.Dimensions
	Paused           bool
}

// Stall describes a transition that was force-revealed by the safety timeout.
type Stall struct {
	Source     string
	Generation uint64
	State      State
	Elapsed    time.Duration
}

// Hooks receive the machine's outward notifications. Nil hooks are skipped.
type Hooks struct {
	OnStill    func(showStill bool)
	OnMetadata func(Metadata)
	OnStall    func(Stall)
	OnError    func(source string, err error)
}

// Machine is the source transition state machine.
type Machine struct {
	eng     engine.Engine
	sched   loop.Scheduler
	seek    *seek.Coordinator
	tracker *position.Tracker
	cfg     Config
	hooks   Hooks
	log     logrus.FieldLogger

	generation    uint64
	state         State
	pending       string
	actual        string
	transitioning bool
	showStill     bool

	debounce       loop.Timer
	removeCanPlay  func()
	removeMetadata func()
}

// New creates an idle machine bound to eng. Zero durations in cfg take the
// defaults.
func New(
	eng engine.Engine,
	sched loop.Scheduler,
	sc *seek.Coordinator,
	tracker *position.Tracker,
	cfg Config,
	hooks Hooks,
	log logrus.FieldLogger,
) *Machine {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	m := &Machine{
		eng:     eng,
		sched:   sched,
		seek:    sc,
		tracker: tracker,
		cfg:     cfg,
		hooks:   hooks,
		log:     log,
	}
	m.removeMetadata = eng.On(engine.EventLoadedMetadata, m.handleMetadata)
	return m
}

// Request sets the desired source. Requests equal to the pending source are
// not a change and are ignored, as are empty sources.
func (m *Machine) Request(source string) {
	if source == "" || source == m.pending {
		return
	}

	m.generation++
	gen := m.generation
	m.log.WithFields(logrus.Fields{
		"generation": gen,
		"source":     source,
		"from":       m.state,
	}).Debug("source requested")

	m.state = StateDebouncing
	m.setTransitioning(true)
	m.tracker.SetCurrentTime(m.seek.Memo())
	m.pending = source
	m.seek.ResetInitialAttempt()

	if m.debounce != nil {
		m.debounce.Stop()
	}
	m.debounce = m.sched.AfterFunc(m.cfg.Debounce, func() { m.commit(gen) })
	m.sched.AfterFunc(m.cfg.Timeout, func() { m.expire(gen) })
}

// commit hands the pending source to the engine once the debounce settles.
func (m *Machine) commit(gen uint64) {
	if gen != m.generation {
		return
	}
	m.debounce = nil
	m.actual = m.pending
	m.state = StateLoading

	if m.removeCanPlay != nil {
		m.removeCanPlay()
	}
	m.removeCanPlay = m.eng.On(engine.EventCanPlay, func() { m.handleCanPlay(gen) })

	m.log.WithFields(logrus.Fields{
		"generation": gen,
		"source":     m.actual,
	}).Info("loading source")
	if err := m.eng.SetSource(m.actual); err != nil {
		// The safety timeout reveals whatever is on screen.
		m.log.WithError(err).WithField("source", m.actual).Warn("set source failed")
		if m.hooks.OnError != nil {
			m.hooks.OnError(m.actual, err)
		}
	}
}

// handleMetadata reports metadata unconditionally; consumers want duration
// and size as soon as they exist, independent of reveal timing.
func (m *Machine) handleMetadata() {
	if m.hooks.OnMetadata == nil {
		return
	}
	m.hooks.OnMetadata(Metadata{
		Duration:         m.eng.Duration(),
		Dimensions:       m.eng.DisplaySize(),
		ActualDimensions: m.eng.VideoSize(),
		Paused:           m.eng.Paused(),
	})
}

func (m *Machine) handleCanPlay(gen uint64) {
	if gen != m.generation || !m.transitioning || m.state != StateLoading {
		return
	}
	if !m.seek.SeekPreferredInitialPosition() {
		m.confirm(gen)
		return
	}
	m.state = StateSeekWait
	m.eng.Once(engine.EventSeeked, func() {
		if gen != m.generation || !m.transitioning {
			return
		}
		m.confirm(gen)
	})
}

// confirm waits for two presented frames before revealing. The first only
// shows the pipeline accepted the load or seek; the second shows a frame
// matching it has been composited.
func (m *Machine) confirm(gen uint64) {
	m.state = StateConfirming
	m.eng.RequestPresentedFrame(func(float64) {
		if gen != m.generation {
			return
		}
		m.eng.RequestPresentedFrame(func(mediaTime float64) {
			if gen != m.generation || !m.transitioning {
				return
			}
			m.log.WithFields(logrus.Fields{
				"generation": gen,
				"mediaTime":  mediaTime,
			}).Debug("frame confirmed")
			m.reveal(mediaTime)
		})
	})
}

// expire is the liveness guarantee: a source that never becomes playable
// must not freeze the surface.
func (m *Machine) expire(gen uint64) {
	if gen != m.generation || !m.transitioning {
		return
	}
	stalled := m.state
	m.log.WithFields(logrus.Fields{
		"generation": gen,
		"source":     m.pending,
		"state":      stalled,
	}).Warn("transition stalled, forcing reveal")

	if m.debounce != nil {
		m.debounce.Stop()
		m.debounce = nil
	}
	at := m.tracker.Position().CurrentTime
	if m.eng.HasMetadata() {
		at = m.eng.CurrentTime()
	}
	m.reveal(at)

	if m.hooks.OnStall != nil {
		m.hooks.OnStall(Stall{
			Source:     m.pending,
			Generation: gen,
			State:      stalled,
			Elapsed:    m.cfg.Timeout,
		})
	}
}

func (m *Machine) reveal(at float64) {
	m.state = StateIdle
	m.setTransitioning(false)
	m.tracker.SetCurrentTime(at)
}

func (m *Machine) setTransitioning(on bool) {
	m.transitioning = on
	m.tracker.SetSuppressed(on)
	m.seek.SetTransitioning(on)
	if m.showStill == on {
		return
	}
	m.showStill = on
	if m.hooks.OnStill != nil {
		m.hooks.OnStill(on)
	}
}

// Close detaches engine listeners and stops the debounce timer.
// The safety timeout may still fire; callers stop the loop after Close.
func (m *Machine) Close() {
	if m.debounce != nil {
		m.debounce.Stop()
		m.debounce = nil
	}
	if m.removeCanPlay != nil {
		m.removeCanPlay()
		m.removeCanPlay = nil
	}
	if m.removeMetadata != nil {
		m.removeMetadata()
		m.removeMetadata = nil
	}
}

// Generation returns the current transition generation.
func (m *Machine) Generation() uint64 { return m.generation }

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Transitioning reports whether a transition is in progress.
func (m *Machine) Transitioning() bool { return m.transitioning }

// ShowStill reports whether the surface should show the frozen last frame.
func (m *Machine) ShowStill() bool { return m.showStill }

// Pending returns the latest requested source.
func (m *Machine) Pending() string { return m.pending }

// Actual returns the source last handed to the engine.
func (m *Machine) Actual() string { return m.actual }
