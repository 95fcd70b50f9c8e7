// Package testutil provides test helpers shared across packages.
package testutil

import (
	"sync"
	"time"

	"pomodoro/internal/clock"
)

// MockClock is a manually advanced clock.Clock for deterministic tests.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// Compile-time assertion that MockClock implements clock.Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to a fixed reference instant.
func NewMockClock() *MockClock {
	return NewMockClockAt(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC))
}

// NewMockClockAt creates a MockClock set to t.
func NewMockClockAt(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mock's current time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the mock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set moves the mock to t.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
