// Package clock provides an abstraction over the current time for testability.
// Production code uses RealClock, tests inject testutil.MockClock.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	// Now returns the current time. Readings from the real clock carry a
	// monotonic component, so differences between them are immune to wall clock jumps.
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now implements Clock.Now using time.Now.
func (c *RealClock) Now() time.Time {
	return time.Now()
}
