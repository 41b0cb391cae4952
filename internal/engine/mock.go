package engine

import "math"

// Mock is a test double for Engine. Events and frames only happen when a
// test triggers them through the helpers below.
type Mock struct {
	events Emitter
	frames FrameCallbacks

	source      string
	currentTime float64
	duration    float64
	paused      bool
	hasMetadata bool
	video       Dimensions
	display     Dimensions

	setSourceErr error
	sourceCalls  []string
	seekCalls    []float64
	playCalls    int
	pauseCalls   int
}

// NewMock creates a paused mock engine with no source.
func NewMock() *Mock {
	return &Mock{
		duration: math.NaN(),
		paused:   true,
	}
}

func (m *Mock) SetSource(url string) error {
	m.sourceCalls = append(m.sourceCalls, url)
	if m.setSourceErr != nil {
		return m.setSourceErr
	}
	m.source = url
	m.currentTime = 0
	m.duration = math.NaN()
	m.hasMetadata = false
	return nil
}

func (m *Mock) Play() error {
	m.playCalls++
	m.paused = false
	return nil
}

func (m *Mock) Pause() error {
	m.pauseCalls++
	m.paused = true
	return nil
}

func (m *Mock) CurrentTime() float64 { return m.currentTime }

func (m *Mock) SetCurrentTime(t float64) {
	m.seekCalls = append(m.seekCalls, t)
	m.currentTime = t
}

func (m *Mock) Duration() float64 { return m.duration }

func (m *Mock) Paused() bool { return m.paused }

func (m *Mock) HasMetadata() bool { return m.hasMetadata }

func (m *Mock) VideoSize() Dimensions { return m.video }

func (m *Mock) DisplaySize() Dimensions { return m.display }

func (m *Mock) On(ev Event, fn func()) func() { return m.events.On(ev, fn) }

func (m *Mock) Once(ev Event, fn func()) { m.events.Once(ev, fn) }

func (m *Mock) RequestPresentedFrame(cb func(float64)) FrameRequest {
	return m.frames.Request(cb)
}

func (m *Mock) CancelPresentedFrame(id FrameRequest) { m.frames.Cancel(id) }

// Test helpers

// LoadMetadata marks metadata as known and fires loadedmetadata.
func (m *Mock) LoadMetadata(duration float64, size Dimensions) {
	m.duration = duration
	m.video = size
	m.display = size
	m.hasMetadata = true
	m.events.Emit(EventLoadedMetadata)
}

// FireCanPlay fires canplay.
func (m *Mock) FireCanPlay() { m.events.Emit(EventCanPlay) }

// FireSeeked fires seeked.
func (m *Mock) FireSeeked() { m.events.Emit(EventSeeked) }

// PresentFrame presents a frame at the current time.
func (m *Mock) PresentFrame() { m.frames.Present(m.currentTime) }

// PresentFrameAt moves the playhead to t without recording a seek and
// presents a frame there, as playback would.
func (m *Mock) PresentFrameAt(t float64) {
	m.currentTime = t
	m.frames.Present(t)
}

// Drift moves the playhead without recording a seek.
func (m *Mock) Drift(t float64) { m.currentTime = t }

// SetPausedState changes the paused flag without counting a Pause call.
func (m *Mock) SetPausedState(paused bool) { m.paused = paused }

func (m *Mock) SetSourceError(err error) { m.setSourceErr = err }

func (m *Mock) Source() string { return m.source }

func (m *Mock) SourceCalls() []string { return m.sourceCalls }

func (m *Mock) SeekCalls() []float64 { return m.seekCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) PendingFrames() int { return m.frames.Pending() }

func (m *Mock) ListenerCount(ev Event) int { return m.events.Count(ev) }

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
