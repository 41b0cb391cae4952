package engine

// Emitter is the listener registry shared by engine implementations.
// Not safe for concurrent use; engines call it from the loop goroutine.
type Emitter struct {
	next      uint64
	listeners map[Event][]listener
}

type listener struct {
	id   uint64
	fn   func()
	once bool
}

// On registers fn for every occurrence of ev.
func (e *Emitter) On(ev Event, fn func()) func() {
	id := e.add(ev, fn, false)
	return func() { e.remove(ev, id) }
}

// Once registers fn for the next occurrence of ev.
func (e *Emitter) Once(ev Event, fn func()) {
	e.add(ev, fn, true)
}

// Emit invokes the listeners registered for ev at the time of the call.
// Listeners added while emitting wait for the next occurrence.
func (e *Emitter) Emit(ev Event) {
	current := e.listeners[ev]
	if len(current) == 0 {
		return
	}
	snapshot := make([]listener, len(current))
	copy(snapshot, current)

	kept := current[:0]
	for _, l := range current {
		if !l.once {
			kept = append(kept, l)
		}
	}
	e.listeners[ev] = kept

	for _, l := range snapshot {
		if l.once || e.has(ev, l.id) {
			l.fn()
		}
	}
}

// Count returns the number of listeners registered for ev.
func (e *Emitter) Count(ev Event) int {
	return len(e.listeners[ev])
}

func (e *Emitter) add(ev Event, fn func(), once bool) uint64 {
	if e.listeners == nil {
		e.listeners = make(map[Event][]listener)
	}
	e.next++
	e.listeners[ev] = append(e.listeners[ev], listener{id: e.next, fn: fn, once: once})
	return e.next
}

func (e *Emitter) remove(ev Event, id uint64) {
	ls := e.listeners[ev]
	for i, l := range ls {
		if l.id == id {
			e.listeners[ev] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

func (e *Emitter) has(ev Event, id uint64) bool {
	for _, l := range e.listeners[ev] {
		if l.id == id {
			return true
		}
	}
	return false
}

// FrameCallbacks tracks pending presented-frame callbacks.
type FrameCallbacks struct {
	next    FrameRequest
	pending []frameCallback
}

type frameCallback struct {
	id FrameRequest
	cb func(float64)
}

// Request registers cb for the next presented frame.
func (f *FrameCallbacks) Request(cb func(mediaTime float64)) FrameRequest {
	f.next++
	f.pending = append(f.pending, frameCallback{id: f.next, cb: cb})
	return f.next
}

// Cancel drops a pending callback. Unknown ids are ignored.
func (f *FrameCallbacks) Cancel(id FrameRequest) {
	for i, p := range f.pending {
		if p.id == id {
			f.pending = append(f.pending[:i:i], f.pending[i+1:]...)
			return
		}
	}
}

// Present invokes every callback pending before the call with mediaTime.
// Callbacks requested from inside a callback wait for the next frame.
func (f *FrameCallbacks) Present(mediaTime float64) {
	batch := f.pending
	f.pending = nil
	for _, p := range batch {
		p.cb(mediaTime)
	}
}

// Pending returns the number of callbacks waiting for a frame.
func (f *FrameCallbacks) Pending() int {
	return len(f.pending)
}
