// Package mpv is an engine backed by libmpv.
//
// libmpv delivers events on its own thread. The event goroutine only reads
// the event id and posts a handler onto the controller's loop, so all engine
// state is still owned by the loop goroutine.
//
// libmpv has no per-frame presentation callback. Presented frames are
// approximated by a display-refresh clock that reads time-pos, and only runs
// once the file can play and no seek is in flight: the first
// PLAYBACK_RESTART after a load maps to canplay, later ones to seeked.
package mpv

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/supersonic-app/go-mpv"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/loop"
)

// ErrUninitialized is returned when the engine is used after Close.
var ErrUninitialized = errors.New("mpv engine uninitialized")

const defaultRefreshRate = 60.0

// Config holds libmpv settings.
type Config struct {
	// RefreshRate is how often presented frames are sampled per second.
	RefreshRate float64
	// Window opens an mpv video window. Disable for headless use.
	Window bool
}

// Verify Engine implements the engine interfaces at compile time.
var (
	_ engine.Engine = (*Engine)(nil)
	_ engine.Looper = (*Engine)(nil)
	_ engine.Muter  = (*Engine)(nil)
)

// Engine drives one libmpv instance.
type Engine struct {
	mpv      *mpv.Mpv
	sched    loop.Scheduler
	log      logrus.FieldLogger
	interval time.Duration
	cancel   context.CancelFunc

	events engine.Emitter
	frames engine.FrameCallbacks

	initialized bool
	source      string
	loaded      bool
	ready       bool
	seeking     bool
	paused      bool
	currentTime float64
	duration    float64
	video       engine.Dimensions
	display     engine.Dimensions
	ticking     bool
}

// New creates and initializes a paused libmpv instance. Call Start to begin
// receiving events.
func New(sched loop.Scheduler, cfg Config, log logrus.FieldLogger) (*Engine, error) {
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = defaultRefreshRate
	}
	m := mpv.Create()

	m.SetOptionString("idle", "yes")
	m.SetOptionString("pause", "yes")
	m.SetOptionString("keep-open", "yes")
	m.SetOptionString("hr-seek", "yes")
	m.SetOptionString("hr-seek-framedrop", "no")
	m.SetOptionString("terminal", "no")
	m.SetOptionString("osc", "no")
	m.SetOptionString("input-default-bindings", "no")
	if cfg.Window {
		m.SetOptionString("force-window", "yes")
	} else {
		m.SetOptionString("vo", "null")
	}
	m.SetOption("volume", mpv.FORMAT_INT64, 100)

	if err := m.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize mpv: %w", err)
	}

	return &Engine{
		mpv:         m,
		sched:       sched,
		log:         log,
		interval:    time.Duration(float64(time.Second) / cfg.RefreshRate),
		initialized: true,
		paused:      true,
		duration:    math.NaN(),
	}, nil
}

// Start runs the event goroutine until ctx is cancelled or Close is called.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	go e.eventLoop(ctx)
}

func (e *Engine) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			ev := e.mpv.WaitEvent(1 /*timeout seconds*/)
			switch ev.Event_Id {
			case mpv.EVENT_FILE_LOADED:
				e.sched.Post(e.fileLoaded)
			case mpv.EVENT_SEEK:
				e.sched.Post(e.seekStarted)
			case mpv.EVENT_PLAYBACK_RESTART:
				e.sched.Post(e.playbackRestarted)
			}
		}
	}
}

func (e *Engine) fileLoaded() {
	if !e.initialized {
		return
	}
	e.loaded = true
	e.duration = e.getDouble("duration", math.NaN())
	e.video = engine.Dimensions{
		Width:  e.getInt("width"),
		Height: e.getInt("height"),
	}
	e.display = engine.Dimensions{
		Width:  e.getInt("dwidth"),
		Height: e.getInt("dheight"),
	}
	e.log.WithFields(logrus.Fields{
		"source":   e.source,
		"duration": e.duration,
	}).Debug("file loaded")
	e.events.Emit(engine.EventLoadedMetadata)
}

func (e *Engine) seekStarted() {
	e.seeking = true
}

func (e *Engine) playbackRestarted() {
	e.seeking = false
	if !e.initialized || !e.loaded {
		return
	}
	if e.ready {
		e.events.Emit(engine.EventSeeked)
	} else {
		e.ready = true
		e.events.Emit(engine.EventCanPlay)
	}
	e.ensureTicking()
}

func (e *Engine) SetSource(url string) error {
	if !e.initialized {
		return ErrUninitialized
	}
	if err := e.mpv.Command([]string{"loadfile", url, "replace"}); err != nil {
		return fmt.Errorf("loadfile %s: %w", url, err)
	}
	e.source = url
	e.loaded = false
	e.ready = false
	e.seeking = false
	e.currentTime = 0
	e.duration = math.NaN()
	return nil
}

func (e *Engine) Play() error {
	return e.setPaused(false)
}

func (e *Engine) Pause() error {
	return e.setPaused(true)
}

func (e *Engine) setPaused(paused bool) error {
	if !e.initialized {
		return ErrUninitialized
	}
	if err := e.mpv.SetProperty("pause", mpv.FORMAT_FLAG, paused); err != nil {
		return fmt.Errorf("set pause: %w", err)
	}
	e.paused = paused
	e.ensureTicking()
	return nil
}

func (e *Engine) CurrentTime() float64 { return e.currentTime }

// SetCurrentTime issues an exact absolute seek. Like a media element, the
// reported time moves to t immediately.
func (e *Engine) SetCurrentTime(t float64) {
	if !e.initialized || math.IsNaN(t) {
		return
	}
	target := fmt.Sprintf("%.6f", t)
	if err := e.mpv.Command([]string{"seek", target, "absolute+exact"}); err != nil {
		e.log.WithError(err).WithField("target", t).Warn("seek failed")
		return
	}
	e.currentTime = t
	e.seeking = true
}

func (e *Engine) Duration() float64 { return e.duration }

func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) HasMetadata() bool { return e.loaded }

func (e *Engine) VideoSize() engine.Dimensions { return e.video }

func (e *Engine) DisplaySize() engine.Dimensions { return e.display }

func (e *Engine) On(ev engine.Event, fn func()) func() { return e.events.On(ev, fn) }

func (e *Engine) Once(ev engine.Event, fn func()) { e.events.Once(ev, fn) }

func (e *Engine) RequestPresentedFrame(cb func(float64)) engine.FrameRequest {
	id := e.frames.Request(cb)
	e.ensureTicking()
	return id
}

func (e *Engine) CancelPresentedFrame(id engine.FrameRequest) { e.frames.Cancel(id) }

// SetLoop sets loop-file.
func (e *Engine) SetLoop(on bool) {
	if !e.initialized {
		return
	}
	v := "no"
	if on {
		v = "inf"
	}
	if err := e.mpv.SetPropertyString("loop-file", v); err != nil {
		e.log.WithError(err).Warn("set loop-file failed")
	}
}

// SetMuted sets the mute property.
func (e *Engine) SetMuted(on bool) {
	if !e.initialized {
		return
	}
	if err := e.mpv.SetProperty("mute", mpv.FORMAT_FLAG, on); err != nil {
		e.log.WithError(err).Warn("set mute failed")
	}
}

func (e *Engine) ensureTicking() {
	if e.ticking || !e.initialized {
		return
	}
	if e.frames.Pending() == 0 && (e.paused || !e.ready) {
		return
	}
	e.ticking = true
	e.sched.AfterFunc(e.interval, e.tick)
}

func (e *Engine) tick() {
	e.ticking = false
	if !e.initialized {
		return
	}
	if e.ready && !e.seeking {
		e.currentTime = e.getDouble("time-pos", e.currentTime)
		if !e.paused {
			e.paused = e.getFlag("pause", e.paused)
		}
		if e.frames.Pending() > 0 {
			e.frames.Present(e.currentTime)
		}
	}
	e.ensureTicking()
}

func (e *Engine) getDouble(name string, fallback float64) float64 {
	v, err := e.mpv.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil || v == nil {
		return fallback
	}
	f, ok := v.(float64)
	if !ok {
		return fallback
	}
	return f
}

func (e *Engine) getInt(name string) int {
	v, err := e.mpv.GetProperty(name, mpv.FORMAT_INT64)
	if err != nil || v == nil {
		return 0
	}
	i, ok := v.(int64)
	if !ok {
		return 0
	}
	return int(i)
}

func (e *Engine) getFlag(name string, fallback bool) bool {
	v, err := e.mpv.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil || v == nil {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// Close stops the event goroutine and destroys the libmpv instance.
// Must be called on the loop.
func (e *Engine) Close() {
	if e.cancel != nil {
		e.cancel()
	}
	if e.initialized {
		_ = e.mpv.Command([]string{"stop"})
		e.mpv.TerminateDestroy()
		e.initialized = false
	}
}
