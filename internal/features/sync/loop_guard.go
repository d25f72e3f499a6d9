package sync

import (
	stdsync "sync"
	"time"
)

type Direction string

const (
	// DirectionForward mirrors canonical fields into legacy keys.
	DirectionForward Direction = "forward"
	// DirectionReverse mirrors legacy keys into canonical fields.
	DirectionReverse Direction = "reverse"
)

// Opposite returns the direction whose recent writes would echo back
// as changes on this direction's input keys.
func (d Direction) Opposite() Direction {
	if d == DirectionForward {
		return DirectionReverse
	}
	return DirectionForward
}

// LoopGuard breaks the mirror feedback loop. Every sync write marks its
// entity and direction; an incoming change whose opposite direction was
// marked inside the debounce window is an echo of our own write and
// must not trigger another sync.
type LoopGuard struct {
	clock  Clock
	window time.Duration

	mu    stdsync.Mutex
	marks map[string]time.Time
}

func NewLoopGuard(clock Clock, window time.Duration) *LoopGuard {
	return &LoopGuard{
		clock:  clock,
		window: window,
		marks:  make(map[string]time.Time),
	}
}

func markKey(entityID string, dir Direction) string {
	return entityID + "|" + string(dir)
}

// Mark records that a sync in the given direction is writing this
// entity right now.
func (g *LoopGuard) Mark(entityID string, dir Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.marks[markKey(entityID, dir)] = g.clock.Now()
	g.sweepLocked()
}

// IsSuppressed reports whether a sync in the given direction wrote this
// entity within the debounce window.
func (g *LoopGuard) IsSuppressed(entityID string, dir Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	at, ok := g.marks[markKey(entityID, dir)]
	if !ok {
		return false
	}
	return g.clock.Now().Sub(at) < g.window
}

// sweepLocked drops expired marks so the map does not grow with every
// entity ever synced. Caller holds the lock.
func (g *LoopGuard) sweepLocked() {
	now := g.clock.Now()
	for key, at := range g.marks {
		if now.Sub(at) >= g.window {
			delete(g.marks, key)
		}
	}
}
