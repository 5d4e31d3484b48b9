package loop

import (
	"errors"
	"fmt"
)

// TimeNS is a monotonic clock reading in nanoseconds.
type TimeNS uint64

// Seconds converts the reading to seconds.
func (t TimeNS) Seconds() float64 {
	return float64(t) / float64(NSPerSecond)
}

// NSPerSecond is the number of nanoseconds in one second.
const NSPerSecond TimeNS = 1_000_000_000

const nsPerMillisecond = 1_000_000

// DefaultUPS is the default number of simulation updates per second.
const DefaultUPS uint64 = 120

// DefaultMaxFPS is the default maximum number of rendered frames per second.
const DefaultMaxFPS uint64 = 60

// ErrZeroRate is the panic value raised when a rate is configured as 0.
var ErrZeroRate = errors.New("rate must be positive")

// ratePeriod returns the time between two consecutive occurrences of an
// action repeating n times per second.
func ratePeriod(n uint64, what string) TimeNS {
	if n == 0 {
		panic(fmt.Errorf("%w: %s cannot be 0", ErrZeroRate, what))
	}

	return NSPerSecond / TimeNS(n)
}
