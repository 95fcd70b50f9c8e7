// Package pomodoro implements the pomodoro technique as a polled state machine.
//
// A caller drives a Machine by polling Performs, ShouldStartBreak and ShouldEndBreak and
// invoking the transitions they permit. Each operation first checks a precondition over
// the current state and returns an *InvalidStateTransitionError without side effects when
// it does not hold.
package pomodoro

import (
	"fmt"
	"time"

	"pomodoro/internal/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stopwatch"
)

// Machine is the pomodoro state machine. It owns its stopwatch and break counter.
// Machine holds no lock; callers sharing one across goroutines must serialize access.
type Machine struct {
	config  model.Configuration
	clock   clock.Clock
	timer   *stopwatch.Stopwatch
	counter breakCounter
	state   State
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the time source. Defaults to the real clock.
func WithClock(c clock.Clock) Option {
	return func(machine *Machine) {
		if c != nil {
			machine.clock = c
		}
	}
}

// New creates a Machine in StateInitialized for the given configuration.
func New(config model.Configuration, opts ...Option) *Machine {
	machine := &Machine{
		config: config,
		clock:  clock.NewRealClock(),
		state:  StateInitialized,
	}
	for _, opt := range opts {
		opt(machine)
	}
	machine.timer = stopwatch.New(machine.clock)
	return machine
}

// Performs starts the machine on first use and reports whether a session is ongoing,
// that is neither initialized nor finished.
func (machine *Machine) Performs() (bool, error) {
	if err := checkState(OpPerforms, machine.state); err != nil {
		return false, err
	}
	if machine.state == StateInitialized {
		if err := machine.timer.Start(); err != nil {
			return false, fmt.Errorf("performs: %w", err)
		}
		machine.state = StateConcentrating
	}
	return machine.state != StateInitialized && machine.state != StateFinished, nil
}

// IsOngoing is an alias for Performs.
func (machine *Machine) IsOngoing() (bool, error) {
	return machine.Performs()
}

// Start begins concentrating if the machine is still initialized.
func (machine *Machine) Start() error {
	_, err := machine.Performs()
	return err
}

// Stop freezes the timer and moves to StateStopped.
func (machine *Machine) Stop() {
	if machine.timer.IsRunning() {
		// Running was just checked, Stop cannot fail.
		_ = machine.timer.Stop()
	}
	machine.state = StateStopped
}

// Reset clears the timer and break counter and returns to StateInitialized.
func (machine *Machine) Reset() {
	machine.counter.reset()
	machine.timer.Reset()
	machine.state = StateInitialized
}

// ShouldStartBreak reports whether the concentration interval has elapsed.
func (machine *Machine) ShouldStartBreak() (bool, error) {
	return machine.shouldStartBreak(OpShouldStartBreak)
}

// IsBreakOngoing reports whether a short or longer break is running.
func (machine *Machine) IsBreakOngoing() (bool, error) {
	if err := checkState(OpIsBreakOngoing, machine.state); err != nil {
		return false, err
	}
	return machine.state == StateBreaking || machine.state == StateLongerBreaking, nil
}

// ShouldEndBreak reports whether the current break has lasted its configured length.
func (machine *Machine) ShouldEndBreak() (bool, error) {
	return machine.shouldEndBreak(OpShouldEndBreak)
}

// StartBreak marks the break start and enters a short break, or a longer break once
// CountUntilLongerBreak short breaks have been taken.
func (machine *Machine) StartBreak() error {
	return machine.startBreak(OpStartBreak)
}

// EndBreak clears the break mark. A short break returns to concentrating,
// a longer break finishes the session.
func (machine *Machine) EndBreak() error {
	return machine.endBreak(OpEndBreak)
}

// StartBreakIfShould starts a break when ShouldStartBreak holds and reports whether it did.
func (machine *Machine) StartBreakIfShould() (bool, error) {
	should, err := machine.shouldStartBreak(OpStartBreakIfShould)
	if err != nil || !should {
		return false, err
	}
	if err := machine.startBreak(OpStartBreakIfShould); err != nil {
		return false, err
	}
	return true, nil
}

// EndBreakIfShould ends the break when ShouldEndBreak holds and reports whether it did.
func (machine *Machine) EndBreakIfShould() (bool, error) {
	should, err := machine.shouldEndBreak(OpEndBreakIfShould)
	if err != nil || !should {
		return false, err
	}
	if err := machine.endBreak(OpEndBreakIfShould); err != nil {
		return false, err
	}
	return true, nil
}

// State returns the current state.
func (machine *Machine) State() State {
	return machine.state
}

// BreakCount returns the number of short breaks since the last longer break or reset.
func (machine *Machine) BreakCount() int {
	return machine.counter.value()
}

// Configuration returns the configuration the machine was created with.
func (machine *Machine) Configuration() model.Configuration {
	return machine.config
}

// StartedAt returns when the session started, or the zero time before Performs.
func (machine *Machine) StartedAt() time.Time {
	return machine.timer.StartedAt()
}

// Elapsed returns the total session time.
func (machine *Machine) Elapsed() time.Duration {
	return machine.timer.Elapsed()
}

// SplitElapsed returns the time spent in the current break, or the total
// session time when no break is marked.
func (machine *Machine) SplitElapsed() time.Duration {
	return machine.timer.SplitElapsed()
}

// Snapshot captures the machine's observable state.
func (machine *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:        machine.state,
		BreakCount:   machine.counter.value(),
		StartedAt:    machine.timer.StartedAt(),
		Elapsed:      machine.timer.Elapsed(),
		SplitElapsed: machine.timer.SplitElapsed(),
		At:           machine.clock.Now(),
	}
}

func (machine *Machine) shouldStartBreak(op Operation) (bool, error) {
	if err := checkState(op, machine.state); err != nil {
		return false, err
	}
	return wholeMinutes(machine.timer.Elapsed()) >= int64(machine.config.ConcentrationMinutes), nil
}

func (machine *Machine) shouldEndBreak(op Operation) (bool, error) {
	if err := checkState(op, machine.state); err != nil {
		return false, err
	}
	limit := machine.config.BreakMinutes
	if machine.state == StateLongerBreaking {
		limit = machine.config.LongerBreakMinutes
	}
	return wholeMinutes(machine.timer.SplitElapsed()) >= int64(limit), nil
}

func (machine *Machine) startBreak(op Operation) error {
	if err := checkState(op, machine.state); err != nil {
		return err
	}
	// A stopped timer cannot be split; the break is then measured from the session start.
	if machine.timer.IsRunning() {
		if err := machine.timer.Split(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if machine.counter.value() >= machine.config.CountUntilLongerBreak {
		machine.counter.reset()
		machine.state = StateLongerBreaking
	} else {
		machine.counter.increment()
		machine.state = StateBreaking
	}
	return nil
}

func (machine *Machine) endBreak(op Operation) error {
	if err := checkState(op, machine.state); err != nil {
		return err
	}
	machine.timer.Unsplit()
	if machine.state == StateLongerBreaking {
		machine.counter.reset()
		machine.state = StateFinished
	} else {
		machine.state = StateConcentrating
	}
	return nil
}

func wholeMinutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}
