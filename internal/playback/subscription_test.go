package playback

import (
	"errors"
	"testing"
	"testing/synctest"

	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/position"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Previous: StatePaused, Current: StatePlaying})
		sub.sendSource(SourceChange{Index: 1, Current: Source{URL: "/clips/b.mp4"}})
		sub.sendPosition(PositionChange{Position: position.Position{CurrentTime: 5, FrameRate: 24}})
		sub.sendMetadata(MetadataChange{Duration: 12.5})
		sub.sendStill(StillChange{ShowStill: true})
		sub.sendStall(StallEvent{Source: "/clips/b.mp4", Generation: 3})
		sub.sendError(ErrorEvent{Operation: errmsg.OpSourceLoad, Err: errors.New("boom")})

		if e := <-sub.StateChanged; e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}
		if sc := <-sub.SourceChanged; sc.Index != 1 || sc.Current.URL != "/clips/b.mp4" {
			t.Errorf("SourceChanged = %+v", sc)
		}
		if pc := <-sub.PositionChanged; pc.Position.CurrentFrame() != 120 {
			t.Errorf("PositionChanged frame = %d, want 120", pc.Position.CurrentFrame())
		}
		if md := <-sub.MetadataLoaded; md.Duration != 12.5 {
			t.Errorf("MetadataLoaded.Duration = %v, want 12.5", md.Duration)
		}
		if st := <-sub.StillChanged; !st.ShowStill {
			t.Error("StillChanged.ShowStill = false, want true")
		}
		if se := <-sub.Stalled; se.Generation != 3 {
			t.Errorf("Stalled.Generation = %d, want 3", se.Generation)
		}
		if ee := <-sub.Error; ee.Operation != errmsg.OpSourceLoad {
			t.Errorf("Error.Operation = %q, want %q", ee.Operation, errmsg.OpSourceLoad)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for i := range eventBufferSize + 5 {
		sub.sendSource(SourceChange{Index: i})
	}

	var got []int
	for len(sub.SourceChanged) > 0 {
		got = append(got, (<-sub.SourceChanged).Index)
	}
	if len(got) != eventBufferSize {
		t.Fatalf("received %d events, want %d (buffer size)", len(got), eventBufferSize)
	}
	if got[0] != 0 || got[len(got)-1] != eventBufferSize-1 {
		t.Errorf("received indexes %d..%d, want the first %d", got[0], got[len(got)-1], eventBufferSize)
	}
}

func TestSubscription_PositionKeepsLatest(t *testing.T) {
	sub := newSubscription()

	for i := range eventBufferSize + 5 {
		sub.sendPosition(PositionChange{Position: position.Position{CurrentTime: float64(i)}})
	}

	var got []float64
	for len(sub.PositionChanged) > 0 {
		got = append(got, (<-sub.PositionChanged).Position.CurrentTime)
	}
	if len(got) != eventBufferSize {
		t.Fatalf("received %d positions, want %d", len(got), eventBufferSize)
	}
	if last := got[len(got)-1]; last != float64(eventBufferSize+4) {
		t.Errorf("last position = %v, want %v", last, eventBufferSize+4)
	}
	if first := got[0]; first != 5 {
		t.Errorf("oldest kept position = %v, want 5", first)
	}
}

func TestErrorEvent_Message(t *testing.T) {
	e := ErrorEvent{
		Operation: errmsg.OpSourceLoad,
		Source:    "/clips/b.mp4",
		Err:       errors.New("no such file"),
	}
	want := "Failed to load source '/clips/b.mp4': no such file"
	if got := e.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
