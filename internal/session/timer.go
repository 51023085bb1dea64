package session

import (
	"sync"
	"time"
)

// Timer is a re-armable single-shot timer. At most one expiration is
// pending at any time, and a firing that lost a race with Start or Cancel
// is dropped.
type Timer struct {
	mu       sync.Mutex
	clock    Clock
	d        time.Duration
	fn       func()
	pending  Stopper
	gen      uint64
	deadline time.Time
}

func NewTimer(clock Clock, d time.Duration, fn func()) *Timer {
	return &Timer{clock: clock, d: d, fn: fn}
}

// Start cancels any pending expiration and arms a new one for the full
// duration.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	gen := t.gen
	t.deadline = t.clock.Now().Add(t.d)
	t.pending = t.clock.AfterFunc(t.d, func() { t.fire(gen) })
}

// Cancel disarms the timer. Calling it on a disarmed timer does nothing.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Deadline is the instant the pending expiration fires, zero when disarmed.
func (t *Timer) Deadline() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return time.Time{}
	}
	return t.deadline
}

func (t *Timer) stopLocked() {
	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.deadline = time.Time{}
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.pending == nil {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.deadline = time.Time{}
	t.mu.Unlock()

	// fn runs without the lock so it may call back into Start or Cancel.
	t.fn()
}
