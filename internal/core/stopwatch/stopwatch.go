// Package stopwatch measures elapsed time with an optional split checkpoint.
package stopwatch

import (
	"errors"
	"fmt"
	"time"

	"pomodoro/internal/clock"
)

// ErrInvalidTimerState indicates an operation that the stopwatch's current state does not allow.
var ErrInvalidTimerState = errors.New("invalid timer state")

// Stopwatch tracks the time since Start. A split marks a checkpoint inside a run so a
// sub-interval can be measured without disturbing the total reading.
// Stopwatch is not safe for concurrent use.
type Stopwatch struct {
	clock   clock.Clock
	started bool
	running bool
	split   bool
	startAt time.Time
	stopAt  time.Time
	splitAt time.Time
}

// New creates a stopwatch in the not-started state. A nil clock uses the real clock.
func New(c clock.Clock) *Stopwatch {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &Stopwatch{clock: c}
}

// Start begins timing. It fails if the stopwatch was started and not reset since.
func (watch *Stopwatch) Start() error {
	if watch.started {
		return fmt.Errorf("start: already started: %w", ErrInvalidTimerState)
	}
	watch.startAt = watch.clock.Now()
	watch.started = true
	watch.running = true
	return nil
}

// Stop freezes the elapsed time. It fails if the stopwatch is not running.
func (watch *Stopwatch) Stop() error {
	if !watch.running {
		return fmt.Errorf("stop: not running: %w", ErrInvalidTimerState)
	}
	watch.stopAt = watch.clock.Now()
	watch.running = false
	return nil
}

// Reset clears all marks and returns to the not-started state.
func (watch *Stopwatch) Reset() {
	watch.started = false
	watch.running = false
	watch.split = false
	watch.startAt = time.Time{}
	watch.stopAt = time.Time{}
	watch.splitAt = time.Time{}
}

// Split records a checkpoint. It fails if the stopwatch is not running.
func (watch *Stopwatch) Split() error {
	if !watch.running {
		return fmt.Errorf("split: not running: %w", ErrInvalidTimerState)
	}
	watch.splitAt = watch.clock.Now()
	watch.split = true
	return nil
}

// Unsplit clears the checkpoint. The total elapsed time is unaffected.
func (watch *Stopwatch) Unsplit() {
	watch.split = false
	watch.splitAt = time.Time{}
}

// Elapsed returns the time since Start while running, or between Start and Stop once stopped.
func (watch *Stopwatch) Elapsed() time.Duration {
	if !watch.started {
		return 0
	}
	return watch.end().Sub(watch.startAt)
}

// SplitElapsed returns the time since the split checkpoint, or since Start when no split is set.
func (watch *Stopwatch) SplitElapsed() time.Duration {
	if !watch.started {
		return 0
	}
	from := watch.startAt
	if watch.split {
		from = watch.splitAt
	}
	return watch.end().Sub(from)
}

// StartedAt returns the instant of the last Start, or the zero time if not started.
func (watch *Stopwatch) StartedAt() time.Time {
	return watch.startAt
}

func (watch *Stopwatch) IsStarted() bool {
	return watch.started
}

func (watch *Stopwatch) IsRunning() bool {
	return watch.running
}

func (watch *Stopwatch) IsSplit() bool {
	return watch.split
}

func (watch *Stopwatch) end() time.Time {
	if watch.running {
		return watch.clock.Now()
	}
	return watch.stopAt
}
