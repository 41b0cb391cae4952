// Package sim provides a deterministic engine that plays virtual clips.
//
// Nothing is decoded: a clip is a duration and a frame size. Loading, seeking
// and frame presentation take configurable amounts of scheduler time, which
// makes the engine useful both for driving the review surface without media
// and for testing the controller against realistic event orderings.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/loop"
)

const (
	DefaultMetadataLatency = 40 * time.Millisecond
	DefaultCanPlayLatency  = 20 * time.Millisecond
	DefaultSeekLatency     = 15 * time.Millisecond
	DefaultRefreshRate     = 60.0
)

// Clip is a virtual source.
type Clip struct {
	URL      string
	Duration float64 // seconds
	Width    int
	Height   int
	// Hung clips load metadata but never become playable.
	Hung bool
}

// Config holds the engine's clips and timing.
type Config struct {
	Clips []Clip
	// MetadataLatency is the delay between SetSource and loadedmetadata.
	MetadataLatency time.Duration
	// CanPlayLatency is the delay between loadedmetadata and canplay.
	CanPlayLatency time.Duration
	// SeekLatency is the delay between a seek and seeked.
	SeekLatency time.Duration
	// RefreshRate is how many frames per second are presented.
	RefreshRate float64
}

// Verify Engine implements the engine interfaces at compile time.
var (
	_ engine.Engine = (*Engine)(nil)
	_ engine.Looper = (*Engine)(nil)
	_ engine.Muter  = (*Engine)(nil)
)

// Engine is a simulated playback engine. Like every engine it must only be
// used from the loop goroutine that sched posts onto.
type Engine struct {
	sched    loop.Scheduler
	cfg      Config
	clips    map[string]Clip
	interval time.Duration
	log      logrus.FieldLogger

	events engine.Emitter
	frames engine.FrameCallbacks

	clip        Clip
	loaded      bool
	ready       bool
	currentTime float64
	paused      bool
	looping     bool
	muted       bool
	seeking     bool

	loadSeq uint64
	seekSeq uint64
	ticking bool
}

// New creates a paused engine with no source. Zero timings take the defaults.
func New(sched loop.Scheduler, cfg Config, log logrus.FieldLogger) *Engine {
	if cfg.MetadataLatency <= 0 {
		cfg.MetadataLatency = DefaultMetadataLatency
	}
	if cfg.CanPlayLatency <= 0 {
		cfg.CanPlayLatency = DefaultCanPlayLatency
	}
	if cfg.SeekLatency <= 0 {
		cfg.SeekLatency = DefaultSeekLatency
	}
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = DefaultRefreshRate
	}
	return &Engine{
		sched:    sched,
		cfg:      cfg,
		clips:    lo.KeyBy(cfg.Clips, func(c Clip) string { return c.URL }),
		interval: time.Duration(float64(time.Second) / cfg.RefreshRate),
		log:      log,
		paused:   true,
	}
}

// SetSource starts loading url. The paused state carries over.
func (e *Engine) SetSource(url string) error {
	clip, ok := e.clips[url]
	if !ok {
		return fmt.Errorf("%w: %s", engine.ErrUnknownSource, url)
	}
	e.loadSeq++
	e.seekSeq++
	seq := e.loadSeq
	e.clip = clip
	e.loaded = false
	e.ready = false
	e.seeking = false
	e.currentTime = 0

	e.sched.AfterFunc(e.cfg.MetadataLatency, func() {
		if seq != e.loadSeq {
			return
		}
		e.loaded = true
		e.log.WithFields(logrus.Fields{
			"source":   clip.URL,
			"duration": clip.Duration,
		}).Debug("metadata loaded")
		e.events.Emit(engine.EventLoadedMetadata)
		if clip.Hung {
			return
		}
		e.sched.AfterFunc(e.cfg.CanPlayLatency, func() {
			if seq != e.loadSeq {
				return
			}
			e.ready = true
			e.events.Emit(engine.EventCanPlay)
			e.ensureTicking()
		})
	})
	return nil
}

func (e *Engine) Play() error {
	if e.clip.URL == "" {
		return fmt.Errorf("play: %w", engine.ErrUnknownSource)
	}
	e.paused = false
	e.ensureTicking()
	return nil
}

func (e *Engine) Pause() error {
	e.paused = true
	return nil
}

func (e *Engine) CurrentTime() float64 { return e.currentTime }

// SetCurrentTime seeks to t, clamped into the clip. A newer seek supersedes
// an unfinished one; only the last fires seeked.
func (e *Engine) SetCurrentTime(t float64) {
	if math.IsNaN(t) {
		return
	}
	if e.loaded {
		t = lo.Clamp(t, 0, e.clip.Duration)
	}
	e.currentTime = t
	e.seeking = true
	e.seekSeq++
	seq := e.seekSeq
	e.sched.AfterFunc(e.cfg.SeekLatency, func() {
		if seq != e.seekSeq {
			return
		}
		e.seeking = false
		e.events.Emit(engine.EventSeeked)
		e.ensureTicking()
	})
}

func (e *Engine) Duration() float64 {
	if !e.loaded {
		return math.NaN()
	}
	return e.clip.Duration
}

func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) HasMetadata() bool { return e.loaded }

func (e *Engine) VideoSize() engine.Dimensions {
	if !e.loaded {
		return engine.Dimensions{}
	}
	return engine.Dimensions{Width: e.clip.Width, Height: e.clip.Height}
}

func (e *Engine) DisplaySize() engine.Dimensions { return e.VideoSize() }

func (e *Engine) On(ev engine.Event, fn func()) func() { return e.events.On(ev, fn) }

func (e *Engine) Once(ev engine.Event, fn func()) { e.events.Once(ev, fn) }

func (e *Engine) RequestPresentedFrame(cb func(float64)) engine.FrameRequest {
	id := e.frames.Request(cb)
	e.ensureTicking()
	return id
}

func (e *Engine) CancelPresentedFrame(id engine.FrameRequest) { e.frames.Cancel(id) }

// SetLoop makes playback restart at the beginning instead of pausing at the end.
func (e *Engine) SetLoop(on bool) { e.looping = on }

// SetMuted records the mute flag; clips have no audio.
func (e *Engine) SetMuted(on bool) { e.muted = on }

// Muted reports the mute flag.
func (e *Engine) Muted() bool { return e.muted }

// Source returns the URL of the current clip.
func (e *Engine) Source() string { return e.clip.URL }

// ensureTicking starts the refresh clock if there is anything to present.
func (e *Engine) ensureTicking() {
	if e.ticking || !e.wantsTick() {
		return
	}
	e.ticking = true
	e.sched.AfterFunc(e.interval, e.tick)
}

func (e *Engine) wantsTick() bool {
	return e.frames.Pending() > 0 || (!e.paused && e.ready)
}

// tick is one display refresh. Frames are only presented once the clip can
// play and no seek is in flight.
func (e *Engine) tick() {
	e.ticking = false
	if e.ready && !e.seeking {
		if !e.paused {
			e.advance(e.interval.Seconds())
		}
		if e.frames.Pending() > 0 {
			e.frames.Present(e.currentTime)
		}
	}
	e.ensureTicking()
}

func (e *Engine) advance(dt float64) {
	next := e.currentTime + dt
	if next < e.clip.Duration {
		e.currentTime = next
		return
	}
	if e.looping && e.clip.Duration > 0 {
		e.currentTime = math.Mod(next, e.clip.Duration)
		return
	}
	e.currentTime = e.clip.Duration
	e.paused = true
	e.log.WithField("source", e.clip.URL).Debug("reached end")
}
