package app

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/position"
)

// fakeService records commands and serves canned queries.
type fakeService struct {
	mu sync.Mutex

	calls       []string
	sources     []playback.Source
	current     playback.Source
	pos         position.Position
	metadata    playback.MetadataChange
	hasMetadata bool
	still       bool
	loop        bool
	muted       bool
	jumpApplied bool
	err         error
}

var _ playback.Service = (*fakeService)(nil)

func newFakeService(sources ...playback.Source) *fakeService {
	return &fakeService{
		sources:     sources,
		pos:         position.Position{Duration: math.NaN(), FrameRate: 24},
		jumpApplied: true,
	}
}

func (f *fakeService) record(format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeService) setKnown(duration float64, frame int) {
	f.pos.Duration = duration
	f.pos.CurrentTime = position.FrameTime(frame, f.pos.FrameRate)
}

func (f *fakeService) Play() error { return f.record("Play") }
func (f *fakeService) Pause() error { return f.record("Pause") }
func (f *fakeService) Toggle() error { return f.record("Toggle") }
func (f *fakeService) Scrub(frame int) error { return f.record("Scrub(%d)", frame) }
func (f *fakeService) StepFrame(d int) error { return f.record("StepFrame(%d)", d) }
func (f *fakeService) NextSource() error { return f.record("NextSource") }
func (f *fakeService) PreviousSource() error { return f.record("PreviousSource") }
func (f *fakeService) SetSource(u string) error { return f.record("SetSource(%s)", u) }

func (f *fakeService) JumpToFrame(frame int) (bool, error) {
	err := f.record("JumpToFrame(%d)", frame)
	return f.jumpApplied, err
}

func (f *fakeService) SeekTo(p time.Duration) error { return f.record("SeekTo(%s)", p) }

func (f *fakeService) SetLoop(on bool) error {
	if err := f.record("SetLoop(%v)", on); err != nil {
		return err
	}
	f.loop = on
	return nil
}

func (f *fakeService) SetMuted(on bool) error {
	if err := f.record("SetMuted(%v)", on); err != nil {
		return err
	}
	f.muted = on
	return nil
}

func (f *fakeService) SelectSource(i int) error {
	if i < 0 || i >= len(f.sources) {
		return playback.ErrSourceIndex
	}
	return f.record("SelectSource(%d)", i)
}

func (f *fakeService) State() playback.State {
	switch {
	case f.current.URL == "":
		return playback.StateStopped
	case f.pos.IsPlaying:
		return playback.StatePlaying
	default:
		return playback.StatePaused
	}
}

func (f *fakeService) IsPlaying() bool { return f.State() == playback.StatePlaying }
func (f *fakeService) Position() position.Position { return f.pos }
func (f *fakeService) ShowStill() bool { return f.still }
func (f *fakeService) Loop() bool { return f.loop }
func (f *fakeService) Muted() bool { return f.muted }
func (f *fakeService) CurrentSource() playback.Source { return f.current }
func (f *fakeService) Sources() []playback.Source { return slices.Clone(f.sources) }
func (f *fakeService) Subscribe() *playback.Subscription { return nil }
func (f *fakeService) Close() error { return nil }

func (f *fakeService) Metadata() (playback.MetadataChange, bool) {
	return f.metadata, f.hasMetadata
}

func (f *fakeService) SourceIndex() int {
	for i, s := range f.sources {
		if s.URL == f.current.URL {
			return i
		}
	}
	return -1
}
