// Package testutil provides deterministic stand-ins for the engine's
// clock and ID generator, so the same test scenario produces
// byte-identical documents and golden snapshots.
package testutil

import (
	"sync"
	"time"
)

// FixedClock returns a time source pinned to the given instant.
//
// Injected via engine.WithClock, it makes birthday-month evaluation and
// every persisted timestamp reproducible.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// SteppingClock is a time source that advances by a fixed step on each
// call, so successive timestamps are distinct but still deterministic.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, although the gateway's single-writer design means only one
// goroutine typically reads it.
type SteppingClock struct {
	mu   sync.Mutex
	at   time.Time
	step time.Duration
}

// NewSteppingClock creates a clock starting at the given instant,
// advancing by step on every Now call.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	return &SteppingClock{at: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.at
	c.at = c.at.Add(c.step)
	return now
}
