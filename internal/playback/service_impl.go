package playback

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/controller"
	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/position"
	"github.com/llehouerou/reelcheck/internal/transition"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	loop *loop.Loop
	ctrl *controller.Controller // loop goroutine only
	log  logrus.FieldLogger

	mu          sync.RWMutex
	sources     []Source
	current     Source
	index       int
	state       State
	pos         position.Position
	metadata    MetadataChange
	hasMetadata bool
	showStill   bool
	looping     bool
	muted       bool
	closed      bool

	subs   []*Subscription
	subsMu sync.RWMutex
}

// New creates a playback service driving eng on l. The loop must be running
// (or about to run) for New to return; the caller owns it and stops it after
// Close.
func New(
	l *loop.Loop,
	eng engine.Engine,
	cfg controller.Config,
	sources []Source,
	log logrus.FieldLogger,
) (Service, error) {
	s := &serviceImpl{
		loop:    l,
		log:     log,
		sources: slices.Clone(sources),
		index:   -1,
		state:   StateStopped,
		pos: position.Position{
			Duration:  math.NaN(),
			FrameRate: cfg.FrameRate,
		},
	}
	err := l.Do(func() {
		s.ctrl = controller.New(eng, l, cfg, observer{s}, log)
	})
	if err != nil {
		return nil, fmt.Errorf("start controller: %w", ErrClosed)
	}
	return s, nil
}

// do runs fn on the loop.
func (s *serviceImpl) do(fn func()) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if err := s.loop.Do(fn); err != nil {
		return ErrClosed
	}
	return nil
}

// Play resumes playback.
func (s *serviceImpl) Play() error {
	var err error
	if doErr := s.do(func() { err = s.ctrl.Play() }); doErr != nil {
		return doErr
	}
	return err
}

// Pause pauses playback on an exact frame boundary.
func (s *serviceImpl) Pause() error {
	var err error
	if doErr := s.do(func() { err = s.ctrl.Pause() }); doErr != nil {
		return doErr
	}
	return err
}

// Toggle switches between playing and paused.
func (s *serviceImpl) Toggle() error {
	var err error
	if doErr := s.do(func() { err = s.ctrl.Toggle() }); doErr != nil {
		return doErr
	}
	return err
}

// Scrub pauses and moves to frame.
func (s *serviceImpl) Scrub(frame int) error {
	return s.do(func() { s.ctrl.Scrub(frame) })
}

// StepFrame pauses and moves delta frames.
func (s *serviceImpl) StepFrame(delta int) error {
	return s.do(func() { s.ctrl.StepFrame(delta) })
}

// JumpToFrame applies an external frame jump. Reports false when the jump was
// dropped because the duration is not known yet.
func (s *serviceImpl) JumpToFrame(frame int) (bool, error) {
	var applied bool
	err := s.do(func() { applied = s.ctrl.JumpToFrame(frame) })
	return applied, err
}

// SeekTo scrubs to the frame nearest to pos.
func (s *serviceImpl) SeekTo(pos time.Duration) error {
	return s.do(func() {
		frame := position.FrameAt(pos.Seconds(), s.ctrl.Position().FrameRate)
		s.ctrl.Scrub(frame)
	})
}

// SetLoop turns looping on or off.
func (s *serviceImpl) SetLoop(on bool) error {
	if err := s.do(func() { s.ctrl.SetLoop(on) }); err != nil {
		return err
	}
	s.mu.Lock()
	s.looping = on
	s.mu.Unlock()
	return nil
}

// SetMuted mutes or unmutes the engine.
func (s *serviceImpl) SetMuted(on bool) error {
	if err := s.do(func() { s.ctrl.SetMuted(on) }); err != nil {
		return err
	}
	s.mu.Lock()
	s.muted = on
	s.mu.Unlock()
	return nil
}

// SetSource requests a transition to url.
func (s *serviceImpl) SetSource(url string) error {
	return s.do(func() { s.request(url) })
}

// SelectSource requests the configured source at index.
func (s *serviceImpl) SelectSource(index int) error {
	s.mu.RLock()
	n := len(s.sources)
	var url string
	if index >= 0 && index < n {
		url = s.sources[index].URL
	}
	s.mu.RUnlock()
	if index < 0 || index >= n {
		return fmt.Errorf("select source %d: %w", index, ErrSourceIndex)
	}
	return s.SetSource(url)
}

// NextSource selects the next configured source, wrapping around.
func (s *serviceImpl) NextSource() error {
	return s.cycleSource(1)
}

// PreviousSource selects the previous configured source, wrapping around.
func (s *serviceImpl) PreviousSource() error {
	return s.cycleSource(-1)
}

func (s *serviceImpl) cycleSource(step int) error {
	s.mu.RLock()
	n := len(s.sources)
	idx := s.index
	s.mu.RUnlock()
	if n == 0 {
		return fmt.Errorf("cycle source: %w", ErrSourceIndex)
	}
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+step)%n + n) % n
	}
	return s.SelectSource(idx)
}

// request runs on the loop.
func (s *serviceImpl) request(url string) {
	before := s.ctrl.Generation()
	s.ctrl.SetSource(url)
	gen := s.ctrl.Generation()
	if gen == before {
		return
	}

	s.mu.Lock()
	src, idx, ok := lo.FindIndexOf(s.sources, func(src Source) bool { return src.URL == url })
	if !ok {
		src = Source{URL: url}
	}
	change := SourceChange{
		Previous:   s.current,
		Current:    src,
		Index:      idx,
		Generation: gen,
	}
	s.current = src
	s.index = idx
	s.hasMetadata = false
	stateChange, changed := s.updateStateLocked()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"source":     src.Label(),
		"generation": gen,
	}).Info("source requested")
	s.broadcast(func(sub *Subscription) { sub.sendSource(change) })
	if changed {
		s.broadcast(func(sub *Subscription) { sub.sendState(stateChange) })
	}
}

// updateStateLocked recomputes State. Caller holds mu.
func (s *serviceImpl) updateStateLocked() (StateChange, bool) {
	next := StatePaused
	switch {
	case s.current.URL == "":
		next = StateStopped
	case s.pos.IsPlaying:
		next = StatePlaying
	}
	if next == s.state {
		return StateChange{}, false
	}
	e := StateChange{Previous: s.state, Current: next}
	s.state = next
	return e, true
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsPlaying returns true if playback is running.
func (s *serviceImpl) IsPlaying() bool {
	return s.State() == StatePlaying
}

// Position returns the last reported position.
func (s *serviceImpl) Position() position.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pos
}

// Metadata returns the current source's metadata once loaded.
func (s *serviceImpl) Metadata() (MetadataChange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata, s.hasMetadata
}

// ShowStill reports whether the frozen frame should be displayed.
func (s *serviceImpl) ShowStill() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showStill
}

// Loop reports the last loop setting.
func (s *serviceImpl) Loop() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.looping
}

// Muted reports the last mute setting.
func (s *serviceImpl) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muted
}

// CurrentSource returns the latest requested source.
func (s *serviceImpl) CurrentSource() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SourceIndex returns the index of the current source, or -1.
func (s *serviceImpl) SourceIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Sources returns a copy of the configured sources.
func (s *serviceImpl) Sources() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sources)
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

// Close detaches the controller from the engine and ends all subscriptions.
// It does not stop the loop.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	// A stopped loop has nothing left to detach from.
	_ = s.loop.Do(s.ctrl.Close)

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// observer receives controller notifications on the loop.
type observer struct {
	s *serviceImpl
}

func (o observer) PositionChanged(p position.Position) {
	s := o.s
	s.mu.Lock()
	s.pos = p
	stateChange, changed := s.updateStateLocked()
	s.mu.Unlock()

	s.broadcast(func(sub *Subscription) { sub.sendPosition(PositionChange{Position: p}) })
	if changed {
		s.log.WithField("state", stateChange.Current).Debug("state changed")
		s.broadcast(func(sub *Subscription) { sub.sendState(stateChange) })
	}
}

func (o observer) MetadataLoaded(md transition.Metadata) {
	s := o.s
	e := MetadataChange{
		Duration:         md.Duration,
		Dimensions:       md.Dimensions,
		ActualDimensions: md.ActualDimensions,
		Paused:           md.Paused,
	}
	s.mu.Lock()
	s.metadata = e
	s.hasMetadata = true
	s.mu.Unlock()

	s.broadcast(func(sub *Subscription) { sub.sendMetadata(e) })
}

func (o observer) StillChanged(showStill bool) {
	s := o.s
	s.mu.Lock()
	s.showStill = showStill
	s.mu.Unlock()

	s.broadcast(func(sub *Subscription) { sub.sendStill(StillChange{ShowStill: showStill}) })
}

func (o observer) TransitionStalled(st transition.Stall) {
	s := o.s
	s.log.WithFields(logrus.Fields{
		"source":     st.Source,
		"generation": st.Generation,
		"state":      st.State,
	}).Warn("source never became playable")
	e := StallEvent{
		Source:     st.Source,
		Generation: st.Generation,
		Elapsed:    st.Elapsed,
	}
	s.broadcast(func(sub *Subscription) { sub.sendStall(e) })
}

func (o observer) Failed(op errmsg.Op, source string, err error) {
	s := o.s
	s.log.WithError(err).WithField("source", source).Error(string(op))
	e := ErrorEvent{Operation: op, Source: source, Err: err}
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}
