package engine

import "time"

// FrameToken identifies a pending frame request. Zero is never issued.
type FrameToken uint64

// FrameFunc is invoked once per display refresh with the host clock.
type FrameFunc func(now time.Duration)

// Listener receives host notifications. *Engine implements it.
type Listener interface {
	PointerMove(x, y float64)
	PointerLeave()
	Resize(w, h int)
	SetPaused(paused bool)
}

// Host provides frame callbacks and notifications.
type Host interface {
	RequestFrame(fn FrameFunc) FrameToken
	CancelFrame(tok FrameToken)
	Subscribe(l Listener) (unsubscribe func())
}

// Loop is a Host that holds at most one pending frame callback and fires it
// when its owner calls Fire. GUI, terminal and headless drivers embed it.
type Loop struct {
	next      FrameToken
	pending   FrameFunc
	token     FrameToken
	listeners map[int]Listener
	lastID    int
}

// NewLoop returns an empty loop.
func NewLoop() *Loop {
	return &Loop{listeners: make(map[int]Listener)}
}

// RequestFrame replaces any pending callback with fn.
func (l *Loop) RequestFrame(fn FrameFunc) FrameToken {
	l.next++
	l.pending = fn
	l.token = l.next
	return l.token
}

// CancelFrame drops the pending callback if tok still identifies it.
func (l *Loop) CancelFrame(tok FrameToken) {
	if tok != 0 && tok == l.token {
		l.pending = nil
		l.token = 0
	}
}

// Subscribe registers a listener and returns its removal func.
func (l *Loop) Subscribe(ln Listener) func() {
	if l.listeners == nil {
		l.listeners = make(map[int]Listener)
	}
	l.lastID++
	id := l.lastID
	l.listeners[id] = ln
	return func() { delete(l.listeners, id) }
}

// Fire runs the pending callback, if any, and reports whether one ran.
// The callback slot is cleared before the call so fn may re-register.
func (l *Loop) Fire(now time.Duration) bool {
	fn := l.pending
	if fn == nil {
		return false
	}
	l.pending = nil
	l.token = 0
	fn(now)
	return true
}

// Pending reports whether a frame callback is registered.
func (l *Loop) Pending() bool { return l.pending != nil }

// Listeners returns the number of subscribed listeners.
func (l *Loop) Listeners() int { return len(l.listeners) }

// Each calls fn for every subscribed listener.
func (l *Loop) Each(fn func(Listener)) {
	for _, ln := range l.listeners {
		fn(ln)
	}
}

// PointerMove forwards to all listeners.
func (l *Loop) PointerMove(x, y float64) { l.Each(func(ln Listener) { ln.PointerMove(x, y) }) }

// PointerLeave forwards to all listeners.
func (l *Loop) PointerLeave() { l.Each(func(ln Listener) { ln.PointerLeave() }) }

// Resize forwards to all listeners.
func (l *Loop) Resize(w, h int) { l.Each(func(ln Listener) { ln.Resize(w, h) }) }

// SetPaused forwards to all listeners.
func (l *Loop) SetPaused(p bool) { l.Each(func(ln Listener) { ln.SetPaused(p) }) }
