package seek

import (
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/loop"
)

type fixture struct {
	eng   *engine.Mock
	clock *loop.Fake
	c     *Coordinator
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	eng := engine.NewMock()
	clock := loop.NewFake()
	c := New(eng, clock, Config{FrameRate: 24}, logger)
	return fixture{eng: eng, clock: clock, c: c}
}

func TestSeekToTime_WithMetadataSeeksDirectly(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(10, engine.Dimensions{})

	issued := f.c.SeekToTime(2.5)

	assert.True(t, issued)
	assert.Equal(t, []float64{2.5}, f.eng.SeekCalls())
	assert.InDelta(t, 2.5, f.c.Memo(), 1e-12)
}

func TestSeekToTime_SameTimeIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(10, engine.Dimensions{})
	f.eng.Drift(3)

	issued := f.c.SeekToTime(3)

	assert.False(t, issued)
	assert.Empty(t, f.eng.SeekCalls())
	assert.InDelta(t, 3, f.c.Memo(), 1e-12, "memo always records the target")
}

func TestSeekToTime_InvalidTargetsSkipped(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(10, engine.Dimensions{})
	f.c.SeekToTime(1)

	for _, target := range []float64{math.NaN(), -1, math.Inf(1)} {
		assert.False(t, f.c.SeekToTime(target))
	}
	assert.Equal(t, []float64{1}, f.eng.SeekCalls())
	assert.InDelta(t, 1, f.c.Memo(), 1e-12)
}

func TestSeekToTime_DefersUntilMetadata(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.c.SeekToTime(4))
	assert.True(t, f.c.SeekToTime(6))
	assert.Empty(t, f.eng.SeekCalls())
	assert.Equal(t, 1, f.eng.ListenerCount(engine.EventLoadedMetadata))

	f.eng.LoadMetadata(10, engine.Dimensions{})

	assert.Equal(t, []float64{6}, f.eng.SeekCalls(), "latest deferred target wins")
}

func TestSeekToFrame(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(10, engine.Dimensions{})

	f.c.SeekToFrame(48)

	assert.Equal(t, []float64{2}, f.eng.SeekCalls())
}

func TestSeekPreferredInitialPosition_ClampsToEnd(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(10, engine.Dimensions{})
	f.c.SeekToTime(3.333)
	require.NoError(t, f.eng.SetSource("short.mp4"))
	f.eng.LoadMetadata(2.0, engine.Dimensions{})

	issued := f.c.SeekPreferredInitialPosition()

	require.True(t, issued)
	calls := f.eng.SeekCalls()
	assert.InDelta(t, 1.999, calls[len(calls)-1], 1e-9)
}

func TestSeekPreferredInitialPosition_OncePerTransition(t *testing.T) {
	f := newFixture(t)
	f.c.SeekToTime(5)
	f.eng.LoadMetadata(10, engine.Dimensions{})
	before := len(f.eng.SeekCalls())

	f.eng.Drift(0)
	assert.True(t, f.c.SeekPreferredInitialPosition())
	f.eng.Drift(0)
	assert.False(t, f.c.SeekPreferredInitialPosition())
	assert.Len(t, f.eng.SeekCalls(), before+1)

	f.c.ResetInitialAttempt()
	f.eng.Drift(0)
	assert.True(t, f.c.SeekPreferredInitialPosition())
}

func TestSeekPreferredInitialPosition_UnknownDuration(t *testing.T) {
	f := newFixture(t)
	f.c.SeekToTime(5)

	assert.False(t, f.c.SeekPreferredInitialPosition())
}

func TestSeekPreferredInitialPosition_ZeroMemo(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(10, engine.Dimensions{})

	assert.False(t, f.c.SeekPreferredInitialPosition())
	assert.Empty(t, f.eng.SeekCalls())
}

func TestHandleScrub_PausesAndSeeks(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(60, engine.Dimensions{})
	require.NoError(t, f.eng.Play())

	f.c.HandleScrub(120)

	assert.True(t, f.eng.Paused())
	assert.InDelta(t, 5.0, f.eng.CurrentTime(), 1e-12)
}

func TestHandlePause_SnapsToFrameBoundary(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(60, engine.Dimensions{})
	settled := false
	f.c.OnPaused(func() { settled = true })
	f.eng.Drift(5.2)
	require.NoError(t, f.eng.Pause())

	f.c.HandlePause()

	want := math.Round(5.2*24) / 24
	assert.InDelta(t, want, f.eng.CurrentTime(), 1e-12)
	assert.InDelta(t, want, f.c.Memo(), 1e-12)
	assert.False(t, settled)

	f.eng.Drift(5.3)
	f.clock.Advance(10 * time.Millisecond)

	assert.True(t, settled)
	assert.InDelta(t, want, f.eng.CurrentTime(), 1e-12, "recheck re-seeks to the boundary")
}

func TestHandlePause_ResumedBeforeRecheck(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(60, engine.Dimensions{})
	settled := false
	f.c.OnPaused(func() { settled = true })
	f.eng.Drift(1.01)

	f.c.HandlePause()
	seeks := len(f.eng.SeekCalls())
	require.NoError(t, f.eng.Play())
	f.clock.Advance(10 * time.Millisecond)

	assert.False(t, settled)
	assert.Len(t, f.eng.SeekCalls(), seeks)
}

func TestHandlePause_IgnoredWhileTransitioning(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(60, engine.Dimensions{})
	f.c.SeekToTime(3)
	f.c.SetTransitioning(true)
	f.eng.Drift(0.4)

	f.c.HandlePause()
	f.clock.Advance(time.Second)

	assert.InDelta(t, 3, f.c.Memo(), 1e-12)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestHandlePause_TransitionBeforeRecheck(t *testing.T) {
	f := newFixture(t)
	f.eng.LoadMetadata(60, engine.Dimensions{})
	settled := false
	f.c.OnPaused(func() { settled = true })
	f.eng.Drift(2.02)
	require.NoError(t, f.eng.Pause())

	f.c.HandlePause()
	seeks := len(f.eng.SeekCalls())
	f.c.SetTransitioning(true)
	f.clock.Advance(10 * time.Millisecond)

	assert.True(t, settled, "paused state still recorded")
	assert.Len(t, f.eng.SeekCalls(), seeks, "no re-seek onto the new source")
}
