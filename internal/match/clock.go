package match

import (
	"sync"
	"time"
)

// Epoch is the default start of simulated time.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Clock is simulated time. It only moves when the engine advances it.
type Clock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewClock creates a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current simulated time.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *Clock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Seconds converts a float seconds value into a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
