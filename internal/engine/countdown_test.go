package engine

import (
	"context"
	"testing"
	"time"
)

const testTick = 5 * time.Millisecond

func newTestCountdown(t *testing.T) *Countdown {
	t.Helper()
	c := New(testTick)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go c.Run(ctx)
	return c
}

// nextEvent waits for the next event or fails the test.
func nextEvent(t *testing.T, c *Countdown) Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for engine event")
		return nil
	}
}

// drainFor collects events for roughly the given duration.
func drainFor(c *Countdown, d time.Duration) []Event {
	var evs []Event
	deadline := time.After(d)
	for {
		select {
		case ev := <-c.Events():
			evs = append(evs, ev)
		case <-deadline:
			return evs
		}
	}
}

// ─── Start / Tick / Complete ────────────────────────────────────────────────

func TestCountdown_StartAcknowledged(t *testing.T) {
	c := newTestCountdown(t)
	c.Start("t1", 10)

	if _, ok := nextEvent(t, c).(Started); !ok {
		t.Fatal("first event should be Started")
	}
}

func TestCountdown_TickSequence(t *testing.T) {
	c := newTestCountdown(t)
	c.Start("t1", 3)

	if _, ok := nextEvent(t, c).(Started); !ok {
		t.Fatal("expected Started ack")
	}

	// Ticks decrement by exactly 1: 2, 1, 0 then Completed instead of -1.
	want := []int{2, 1, 0}
	for _, w := range want {
		ev := nextEvent(t, c)
		u, ok := ev.(Update)
		if !ok {
			t.Fatalf("expected Update, got %T", ev)
		}
		if u.ID != "t1" {
			t.Errorf("Update.ID = %q, want t1", u.ID)
		}
		if u.Remaining != w {
			t.Errorf("Update.Remaining = %d, want %d", u.Remaining, w)
		}
	}

	ev := nextEvent(t, c)
	done, ok := ev.(Completed)
	if !ok {
		t.Fatalf("expected Completed after final tick, got %T", ev)
	}
	if done.ID != "t1" {
		t.Errorf("Completed.ID = %q, want t1", done.ID)
	}
}

func TestCountdown_NoUpdateAfterCompleted(t *testing.T) {
	c := newTestCountdown(t)
	c.Start("t1", 1)

	sawCompleted := false
	for _, ev := range drainFor(c, 20*testTick) {
		switch ev.(type) {
		case Completed:
			sawCompleted = true
		case Update:
			if sawCompleted {
				t.Fatal("Update emitted after Completed for the same run")
			}
		}
	}
	if !sawCompleted {
		t.Fatal("countdown never completed")
	}
}

// ─── At-most-one-active guard ───────────────────────────────────────────────

func TestCountdown_SecondStartIgnored(t *testing.T) {
	c := newTestCountdown(t)
	c.Start("t1", 50)
	c.Start("t2", 50)

	started := 0
	for _, ev := range drainFor(c, 10*testTick) {
		switch e := ev.(type) {
		case Started:
			started++
		case Update:
			if e.ID == "t2" {
				t.Fatal("second start must not take over the countdown")
			}
		}
	}
	if started != 1 {
		t.Errorf("Started events = %d, want exactly 1", started)
	}
}

func TestCountdown_SingleSpeedTicking(t *testing.T) {
	c := newTestCountdown(t)
	c.Start("t1", 100)
	c.Start("t1", 100) // ignored; must not double the tick rate

	var values []int
	for _, ev := range drainFor(c, 8*testTick) {
		if u, ok := ev.(Update); ok {
			values = append(values, u.Remaining)
		}
	}
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]-1 {
			t.Fatalf("remaining sequence %v not strictly -1 per tick", values)
		}
	}
}

// ─── Stop ───────────────────────────────────────────────────────────────────

func TestCountdown_StopIdempotent(t *testing.T) {
	c := newTestCountdown(t)

	// Stop with nothing running is a no-op.
	c.Stop()
	c.Stop()

	c.Start("t1", 50)
	if _, ok := nextEvent(t, c).(Started); !ok {
		t.Fatal("expected Started ack")
	}

	c.Stop()
	c.Stop()
	c.Stop()

	// After the pipeline drains, no further updates arrive.
	drainFor(c, 5*testTick)
	if evs := drainFor(c, 5*testTick); len(evs) != 0 {
		t.Errorf("events after stop = %v, want none", evs)
	}
}

func TestCountdown_RestartAfterStop(t *testing.T) {
	c := newTestCountdown(t)
	c.Start("t1", 50)
	nextEvent(t, c) // Started
	c.Stop()
	drainFor(c, 3*testTick)

	// A stop clears the guard, so a new start is accepted.
	c.Start("t2", 5)
	ev := nextEvent(t, c)
	if _, ok := ev.(Started); !ok {
		t.Fatalf("expected Started after restart, got %T", ev)
	}
}
