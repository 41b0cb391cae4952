package playback

const eventBufferSize = 16

// Subscription delivers service events on buffered channels. Done closes
// when the service does.
type Subscription struct {
	StateChanged    <-chan StateChange
	SourceChanged   <-chan SourceChange
	PositionChanged <-chan PositionChange
	MetadataLoaded  <-chan MetadataChange
	StillChanged    <-chan StillChange
	Stalled         <-chan StallEvent
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	stateCh    chan StateChange
	sourceCh   chan SourceChange
	positionCh chan PositionChange
	metadataCh chan MetadataChange
	stillCh    chan StillChange
	stallCh    chan StallEvent
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		sourceCh:   make(chan SourceChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		metadataCh: make(chan MetadataChange, eventBufferSize),
		stillCh:    make(chan StillChange, eventBufferSize),
		stallCh:    make(chan StallEvent, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.SourceChanged = s.sourceCh
	s.PositionChanged = s.positionCh
	s.MetadataLoaded = s.metadataCh
	s.StillChanged = s.stillCh
	s.Stalled = s.stallCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e unless the subscriber's buffer is full.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

// sendLatest delivers e, evicting the oldest queued value when full. Sends
// come from the loop goroutine only.
func sendLatest[T any](ch chan T, e T) {
	select {
	case ch <- e:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	send(ch, e)
}

func (s *Subscription) sendState(e StateChange) { send(s.stateCh, e) }

func (s *Subscription) sendSource(e SourceChange) { send(s.sourceCh, e) }

// sendPosition keeps the newest positions: a slow subscriber misses
// intermediate frames, never the frame playback settled on.
func (s *Subscription) sendPosition(e PositionChange) { sendLatest(s.positionCh, e) }

func (s *Subscription) sendMetadata(e MetadataChange) { send(s.metadataCh, e) }

func (s *Subscription) sendStill(e StillChange) { send(s.stillCh, e) }

func (s *Subscription) sendStall(e StallEvent) { send(s.stallCh, e) }

func (s *Subscription) sendError(e ErrorEvent) { send(s.errorCh, e) }
