package clock

import (
	"sync"
	"time"
)

// Clock is the single source of "now" for booking validation and state classification.
type Clock interface {
	Now() time.Time
}

// precision matches PostgreSQL timestamptz so a stored "now" compares equal after a round trip.
const precision = time.Microsecond

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(precision)
}

// FixedClock only moves when told to. Safe for concurrent use.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
