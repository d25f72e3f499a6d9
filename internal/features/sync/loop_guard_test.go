package sync

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestLoopGuardSuppressesInsideWindow(t *testing.T) {
	clock := newFakeClock()
	guard := NewLoopGuard(clock, 3*time.Second)

	guard.Mark("e1", DirectionForward)

	if !guard.IsSuppressed("e1", DirectionForward) {
		t.Error("fresh mark should suppress")
	}

	clock.Advance(2 * time.Second)
	if !guard.IsSuppressed("e1", DirectionForward) {
		t.Error("mark inside window should still suppress")
	}

	clock.Advance(2 * time.Second)
	if guard.IsSuppressed("e1", DirectionForward) {
		t.Error("expired mark should not suppress")
	}
}

func TestLoopGuardIsolatesEntities(t *testing.T) {
	guard := NewLoopGuard(newFakeClock(), 3*time.Second)

	guard.Mark("e1", DirectionForward)

	if guard.IsSuppressed("e2", DirectionForward) {
		t.Error("mark on e1 must not suppress e2")
	}
}

func TestLoopGuardIsolatesDirections(t *testing.T) {
	guard := NewLoopGuard(newFakeClock(), 3*time.Second)

	guard.Mark("e1", DirectionForward)

	if guard.IsSuppressed("e1", DirectionReverse) {
		t.Error("forward mark must not suppress reverse checks")
	}
}

func TestLoopGuardSweepsExpiredMarks(t *testing.T) {
	clock := newFakeClock()
	guard := NewLoopGuard(clock, time.Second)

	guard.Mark("e1", DirectionForward)
	guard.Mark("e2", DirectionReverse)

	clock.Advance(5 * time.Second)
	guard.Mark("e3", DirectionForward)

	guard.mu.Lock()
	defer guard.mu.Unlock()
	if len(guard.marks) != 1 {
		t.Errorf("expired marks not swept, %d remain", len(guard.marks))
	}
}

func TestDirectionOpposite(t *testing.T) {
	if DirectionForward.Opposite() != DirectionReverse {
		t.Error("forward opposite should be reverse")
	}
	if DirectionReverse.Opposite() != DirectionForward {
		t.Error("reverse opposite should be forward")
	}
}
