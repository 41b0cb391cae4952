package controller

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/position"
	"github.com/llehouerou/reelcheck/internal/transition"
)

const (
	sourceA = "shot010_v1.mp4"
	sourceB = "shot010_v2.mp4"
	sourceC = "shot010_v3.mp4"
)

type failure struct {
	op     errmsg.Op
	source string
	err    error
}

type recorder struct {
	positions []position.Position
	metadata  []transition.Metadata
	stills    []bool
	stalls    []transition.Stall
	failures  []failure
}

func (r *recorder) PositionChanged(p position.Position) { r.positions = append(r.positions, p) }

func (r *recorder) MetadataLoaded(md transition.Metadata) { r.metadata = append(r.metadata, md) }

func (r *recorder) StillChanged(on bool) { r.stills = append(r.stills, on) }

func (r *recorder) TransitionStalled(s transition.Stall) { r.stalls = append(r.stalls, s) }

func (r *recorder) Failed(op errmsg.Op, source string, err error) {
	r.failures = append(r.failures, failure{op: op, source: source, err: err})
}

func newTestController(t *testing.T) (*Controller, *engine.Mock, *loop.Fake, *recorder) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	eng := engine.NewMock()
	clock := loop.NewFake()
	rec := &recorder{}
	c := New(eng, clock, Config{FrameRate: 24}, rec, logger)
	return c, eng, clock, rec
}

// reveal drives the pending source through load, canplay and two presented
// frames. The position memo must already be on screen (no restore seek).
func reveal(t *testing.T, eng *engine.Mock, clock *loop.Fake, duration float64) {
	t.Helper()
	clock.Advance(transition.DefaultDebounce)
	eng.LoadMetadata(duration, engine.Dimensions{Width: 1920, Height: 1080})
	eng.FireCanPlay()
	eng.PresentFrame()
	eng.PresentFrame()
}

func TestController_ScrubToFrameWhilePlaying(t *testing.T) {
	c, eng, clock, _ := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)
	require.False(t, c.Transitioning())

	require.NoError(t, c.Play())
	eng.PresentFrameAt(2.3)
	require.True(t, c.Position().IsPlaying)

	c.Scrub(120)

	assert.True(t, eng.Paused())
	assert.InDelta(t, 5.0, eng.CurrentTime(), 1e-12)
	pos := c.Position()
	assert.InDelta(t, 5.0, pos.CurrentTime, 1e-12)
	assert.Equal(t, 120, pos.CurrentFrame())
	assert.Equal(t, 240, pos.FrameCount())
	assert.False(t, pos.IsPlaying)
}

func TestController_RapidSwitchLoadsOnlyLast(t *testing.T) {
	c, eng, clock, rec := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)
	c.Scrub(48)

	c.SetSource(sourceB)
	clock.Advance(40 * time.Millisecond)
	c.SetSource(sourceC)
	clock.Advance(40 * time.Millisecond)
	assert.Equal(t, []string{sourceA}, eng.SourceCalls(), "still debouncing")

	clock.Advance(transition.DefaultDebounce)
	assert.Equal(t, []string{sourceA, sourceC}, eng.SourceCalls())
	assert.Equal(t, sourceC, c.Source())

	eng.LoadMetadata(8, engine.Dimensions{Width: 1280, Height: 720})
	eng.FireCanPlay()
	assert.Equal(t, transition.StateSeekWait, c.TransitionState())
	eng.FireSeeked()
	eng.PresentFrame()
	eng.PresentFrame()

	assert.False(t, c.Transitioning())
	assert.False(t, c.ShowStill())
	assert.Equal(t, 48, c.Position().CurrentFrame())
	assert.InDelta(t, 2.0, eng.CurrentTime(), 1e-12)
	assert.Equal(t, []bool{true, false, true, false}, rec.stills)
	assert.Len(t, rec.metadata, 2)
}

func TestController_StepFrame(t *testing.T) {
	c, eng, clock, _ := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)

	c.StepFrame(1)
	assert.Equal(t, 1, c.Position().CurrentFrame())
	assert.InDelta(t, 1.0/24, eng.CurrentTime(), 1e-12)

	c.StepFrame(-5)
	assert.Equal(t, 0, c.Position().CurrentFrame())

	c.StepFrame(1000)
	assert.Equal(t, 240, c.Position().CurrentFrame())
	assert.True(t, eng.Paused())
}

func TestController_PauseSnapsToFrame(t *testing.T) {
	c, eng, clock, _ := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)
	require.NoError(t, c.Play())
	eng.PresentFrameAt(1.01)

	require.NoError(t, c.Pause())
	assert.InDelta(t, 1.0, eng.CurrentTime(), 1e-12)
	assert.True(t, c.Position().IsPlaying, "playing until pause settles")
	eng.PresentFrame()
	assert.True(t, c.Position().IsPlaying, "frames during stabilization keep the flag")

	clock.Advance(10 * time.Millisecond)
	assert.False(t, c.Position().IsPlaying)
	assert.InDelta(t, 1.0, eng.CurrentTime(), 1e-12)
}

func TestController_EngineStopsAtEnd(t *testing.T) {
	c, eng, clock, rec := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)
	require.NoError(t, c.Play())
	eng.PresentFrameAt(9.9)
	require.True(t, c.Position().IsPlaying)

	eng.SetPausedState(true)
	eng.PresentFrameAt(10)

	assert.False(t, c.Position().IsPlaying)
	last := rec.positions[len(rec.positions)-1]
	assert.False(t, last.IsPlaying, "observer told about the stop")
	assert.Equal(t, 240, last.CurrentFrame())
}

func TestController_PauseDuringTransition(t *testing.T) {
	c, eng, clock, _ := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)
	require.NoError(t, c.Play())

	c.SetSource(sourceB)
	require.NoError(t, c.Pause())

	assert.False(t, c.Position().IsPlaying)
	assert.Empty(t, eng.SeekCalls())
}

func TestController_Toggle(t *testing.T) {
	c, eng, clock, _ := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)
	plays, pauses := eng.PlayCalls(), eng.PauseCalls()

	require.NoError(t, c.Toggle())
	assert.False(t, eng.Paused())
	assert.True(t, c.Position().IsPlaying)
	assert.Equal(t, plays+1, eng.PlayCalls())

	require.NoError(t, c.Toggle())
	assert.True(t, eng.Paused())
	assert.Equal(t, pauses+1, eng.PauseCalls())
	clock.Advance(10 * time.Millisecond)
	assert.False(t, c.Position().IsPlaying)
}

func TestController_JumpToFrame(t *testing.T) {
	c, eng, clock, _ := newTestController(t)

	assert.False(t, c.JumpToFrame(24), "dropped before duration is known")

	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)

	assert.True(t, c.JumpToFrame(72))
	assert.Equal(t, 72, c.Position().CurrentFrame())
	assert.InDelta(t, 3.0, eng.CurrentTime(), 1e-12)
}

func TestController_ReportsPosition(t *testing.T) {
	c, eng, clock, rec := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)

	eng.PresentFrameAt(0.5)

	require.NotEmpty(t, rec.positions)
	last := rec.positions[len(rec.positions)-1]
	assert.InDelta(t, 0.5, last.CurrentTime, 1e-12)
	assert.InDelta(t, 10.0, last.Duration, 1e-12)
	assert.Equal(t, 12, last.CurrentFrame())
}

func TestController_StallReported(t *testing.T) {
	c, _, clock, rec := newTestController(t)
	c.SetSource(sourceA)

	clock.Advance(transition.DefaultTimeout)

	require.Len(t, rec.stalls, 1)
	assert.Equal(t, sourceA, rec.stalls[0].Source)
	assert.False(t, c.Transitioning())
	assert.False(t, c.ShowStill())
}

func TestController_SourceErrorReported(t *testing.T) {
	c, eng, clock, rec := newTestController(t)
	boom := errors.New("unsupported codec")
	eng.SetSourceError(boom)

	c.SetSource(sourceA)
	clock.Advance(transition.DefaultDebounce)

	require.Len(t, rec.failures, 1)
	assert.Equal(t, errmsg.OpSourceLoad, rec.failures[0].op)
	assert.Equal(t, sourceA, rec.failures[0].source)
	assert.ErrorIs(t, rec.failures[0].err, boom)
	assert.True(t, c.Transitioning(), "recovered by the safety timeout")
}

func TestController_NilObserver(t *testing.T) {
	logger, _ := test.NewNullLogger()
	eng := engine.NewMock()
	clock := loop.NewFake()
	c := New(eng, clock, Config{FrameRate: 24}, nil, logger)

	assert.NotPanics(t, func() {
		c.SetSource(sourceA)
		clock.Advance(transition.DefaultTimeout)
	})
}

func TestController_Close(t *testing.T) {
	c, eng, clock, _ := newTestController(t)
	c.SetSource(sourceA)
	reveal(t, eng, clock, 10)

	c.Close()

	assert.Zero(t, eng.PendingFrames())
	assert.Zero(t, eng.ListenerCount(engine.EventCanPlay))
	assert.Zero(t, eng.ListenerCount(engine.EventLoadedMetadata))
}

func TestController_LoopAndMuteIgnoredByPlainEngine(t *testing.T) {
	c, _, _, _ := newTestController(t)

	assert.NotPanics(t, func() {
		c.SetLoop(true)
		c.SetMuted(true)
	})
}
