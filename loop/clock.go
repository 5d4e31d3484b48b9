package loop

import (
	"time"
)

// A Clock provides a strictly non-decreasing nanosecond reading.
type Clock interface {
	Now() TimeNS
}

// A Sleeper blocks the calling goroutine for a duration. The scheduler only
// requires millisecond granularity.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SystemClock reads the operating system's monotonic clock. It also
// implements Sleeper through time.Sleep.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a SystemClock anchored at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
//
// Go's time package carries a monotonic reading in every time.Time, so the
// subtraction is unaffected by wall-clock adjustments.
func (c *SystemClock) Now() TimeNS {
	return TimeNS(time.Since(c.start))
}

// Sleep blocks for at least d.
func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
