package loop

import (
	"sort"
	"time"
)

// Fake is a manually driven Scheduler for tests.
//
// Nothing runs until Advance or Flush is called; callbacks then run on the
// calling goroutine in due-time order (ties in scheduling order).
type Fake struct {
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Verify Fake implements Scheduler at compile time.
var _ Scheduler = (*Fake)(nil)

// NewFake creates a fake scheduler at virtual time zero.
func NewFake() *Fake {
	return &Fake{}
}

// Post schedules fn at the current virtual time.
func (f *Fake) Post(fn func()) {
	f.AfterFunc(0, fn)
}

// AfterFunc schedules fn at now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.seq++
	t := &fakeTimer{at: f.now + max(d, 0), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Now returns the virtual time elapsed since creation.
func (f *Fake) Now() time.Duration {
	return f.now
}

// Advance moves virtual time forward by d, running every callback that
// becomes due, including callbacks scheduled by earlier callbacks.
func (f *Fake) Advance(d time.Duration) {
	target := f.now + d
	for {
		next := f.nextDue(target)
		if next == nil {
			break
		}
		f.now = next.at
		next.fired = true
		next.fn()
	}
	f.now = target
	f.compact()
}

// Flush runs everything due at the current virtual time.
func (f *Fake) Flush() {
	f.Advance(0)
}

// Pending returns the number of scheduled callbacks that have not run.
func (f *Fake) Pending() int {
	n := 0
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (f *Fake) nextDue(target time.Duration) *fakeTimer {
	var due []*fakeTimer
	for _, t := range f.timers {
		if !t.stopped && !t.fired && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (f *Fake) compact() {
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	f.timers = live
}
