package core

import "time"

// TimerID identifies a scheduled one-shot callback. Zero is never issued.
type TimerID uint64

type timer struct {
	id        TimerID
	remaining time.Duration
	fn        func()
}

// Timers is a set of one-shot callbacks driven by simulation time.
// Callbacks run inside Advance, on the caller's goroutine.
type Timers struct {
	next    TimerID
	pending []timer
}

// After schedules fn to run once d of simulated time has elapsed.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.next++
	t.pending = append(t.pending, timer{id: t.next, remaining: d, fn: fn})
	return t.next
}

// Cancel removes a pending callback. It reports whether one was removed.
func (t *Timers) Cancel(id TimerID) bool {
	for i, tm := range t.pending {
		if tm.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending callback.
func (t *Timers) CancelAll() {
	t.pending = t.pending[:0]
}

// Pending returns the number of callbacks not yet fired.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Advance moves simulated time forward by dt and fires every callback
// that has come due, in scheduling order. Callbacks may schedule or
// cancel other timers; newly scheduled ones wait for the next Advance.
func (t *Timers) Advance(dt time.Duration) {
	if len(t.pending) == 0 {
		return
	}

	var due []timer
	kept := t.pending[:0]
	for _, tm := range t.pending {
		tm.remaining -= dt
		if tm.remaining <= 0 {
			due = append(due, tm)
		} else {
			kept = append(kept, tm)
		}
	}
	t.pending = kept

	for _, tm := range due {
		tm.fn()
	}
}
