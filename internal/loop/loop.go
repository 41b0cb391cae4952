// Package loop runs controller work on a single goroutine.
//
// Every piece of controller state is owned by the loop goroutine. Timers and
// engine callbacks never touch that state directly: they post a function onto
// the loop, which runs posted functions one at a time in arrival order.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Do when the loop is no longer running.
var ErrStopped = errors.New("loop stopped")

// Timer is a scheduled callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler posts work onto the loop and schedules delayed work.
type Scheduler interface {
	Post(fn func())
	AfterFunc(d time.Duration, fn func()) Timer
}

// Loop is a single-goroutine executor.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
}

// Verify Loop implements Scheduler at compile time.
var _ Scheduler = (*Loop)(nil)

// New creates a loop. Call Run to start processing.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Run processes posted functions until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		tasks := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range tasks {
			fn()
		}

		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

// Post queues fn to run on the loop. Posting after Stop is a no-op.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc runs fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { l.Post(fn) })
}

// Do runs fn on the loop and waits for it to return.
// Must not be called from the loop goroutine.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return nil
	case <-l.done:
		// fn may have run just before Stop
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Stop ends Run and discards queued work. Safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.queue = nil
	close(l.done)
}

// Done is closed once the loop has been stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
