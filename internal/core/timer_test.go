package core

import (
	"testing"
	"time"
)

func TestTimersFireOnce(t *testing.T) {
	var ts Timers
	fired := 0
	ts.After(50*time.Millisecond, func() { fired++ })

	ts.Advance(20 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired after 20ms, expected to wait for 50ms")
	}
	ts.Advance(30 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d after 50ms, expected 1", fired)
	}
	ts.Advance(time.Second)
	if fired != 1 {
		t.Errorf("one-shot timer fired %d times", fired)
	}
	if ts.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", ts.Pending())
	}
}

func TestTimersCancel(t *testing.T) {
	var ts Timers
	fired := false
	id := ts.After(10*time.Millisecond, func() { fired = true })

	if !ts.Cancel(id) {
		t.Fatal("Cancel should report a pending timer")
	}
	if ts.Cancel(id) {
		t.Error("second Cancel should report nothing removed")
	}

	ts.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestTimersOrderAndReschedule(t *testing.T) {
	var ts Timers
	var order []int

	ts.After(10*time.Millisecond, func() {
		order = append(order, 1)
		ts.After(10*time.Millisecond, func() { order = append(order, 3) })
	})
	ts.After(10*time.Millisecond, func() { order = append(order, 2) })

	ts.Advance(10 * time.Millisecond)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, expected [1 2]", order)
	}

	ts.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("order = %v, expected rescheduled timer to fire next", order)
	}
}

func TestTimersAtTickRate(t *testing.T) {
	cfg := DefaultConfig()
	var ts Timers
	fired := false
	ts.After(time.Second, func() { fired = true })

	for i := 0; i < cfg.TickRate-1; i++ {
		ts.Advance(cfg.FrameDuration())
	}
	if fired {
		t.Fatal("fired before a full second of ticks")
	}
	// Integer frame durations leave a remainder; a couple more ticks cover it.
	for i := 0; i < 2; i++ {
		ts.Advance(cfg.FrameDuration())
	}
	if !fired {
		t.Error("timer did not fire after a second of ticks")
	}
}
