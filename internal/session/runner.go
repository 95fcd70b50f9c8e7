// Package session drives a pomodoro machine by polling it on a fixed interval.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/logger"
	"pomodoro/internal/metrics"
)

// Config contains runtime options for a Runner.
type Config struct {
	TickInterval time.Duration
	Metrics      *metrics.MetricsService
	// OnStep, if set, is called after every step with the machine's snapshot.
	OnStep func(pomodoro.Snapshot)
}

// Runner polls a Machine and applies the break transitions it permits.
// Runner serializes its own access to the machine.
type Runner struct {
	mu      sync.Mutex
	id      string
	machine *pomodoro.Machine
	options Config
}

// NewRunner creates a Runner for machine.
func NewRunner(machine *pomodoro.Machine, options Config) *Runner {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Runner{
		id:      uuid.NewString(),
		machine: machine,
		options: options,
	}
}

// ID returns the session identifier used in logs and status output.
func (runner *Runner) ID() string {
	return runner.id
}

// Snapshot returns the machine's current snapshot.
func (runner *Runner) Snapshot() pomodoro.Snapshot {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.machine.Snapshot()
}

// Step performs one poll of the machine. It returns the transition taken, if any,
// and whether the session is still ongoing.
func (runner *Runner) Step() (*pomodoro.Transition, bool, error) {
	runner.mu.Lock()
	transition, ongoing, err := runner.stepLocked()
	snapshot := runner.machine.Snapshot()
	runner.mu.Unlock()

	if err != nil {
		logger.Errorf("session %s: step failed in state %s: %v", runner.id, snapshot.State, err)
		return nil, false, err
	}
	if transition != nil {
		logger.Infof("session %s: %s -> %s (breaks=%d, elapsed=%s)",
			runner.id, transition.From, transition.To, transition.BreakCount, snapshot.Elapsed.Truncate(time.Second))
		if runner.options.Metrics != nil {
			runner.options.Metrics.RecordTransition(*transition)
		}
	}
	if runner.options.Metrics != nil {
		runner.options.Metrics.Observe(snapshot)
	}
	if runner.options.OnStep != nil {
		runner.options.OnStep(snapshot)
	}
	return transition, ongoing, nil
}

// Run steps the machine on every tick until the session finishes, ctx is cancelled
// or a step fails. On cancellation the machine is stopped and ctx.Err() returned.
func (runner *Runner) Run(ctx context.Context) error {
	logger.Infof("session %s: starting (tick=%s)", runner.id, runner.options.TickInterval)

	if _, ongoing, err := runner.Step(); err != nil || !ongoing {
		return err
	}

	ticker := time.NewTicker(runner.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			runner.stop()
			return ctx.Err()
		case <-ticker.C:
			_, ongoing, err := runner.Step()
			if err != nil {
				return err
			}
			if !ongoing {
				logger.Infof("session %s: finished", runner.id)
				return nil
			}
		}
	}
}

func (runner *Runner) stop() {
	runner.mu.Lock()
	from := runner.machine.State()
	runner.machine.Stop()
	snapshot := runner.machine.Snapshot()
	runner.mu.Unlock()

	logger.Infof("session %s: stopped in state %s after %s", runner.id, from, snapshot.Elapsed.Truncate(time.Second))
	if runner.options.Metrics != nil {
		runner.options.Metrics.RecordTransition(pomodoro.Transition{
			From:       from,
			To:         pomodoro.StateStopped,
			BreakCount: snapshot.BreakCount,
			At:         snapshot.At,
		})
		runner.options.Metrics.Observe(snapshot)
	}
}

func (runner *Runner) stepLocked() (*pomodoro.Transition, bool, error) {
	machine := runner.machine
	from := machine.State()

	ongoing, err := machine.Performs()
	if err != nil {
		return nil, false, err
	}
	if ongoing && machine.State() != pomodoro.StateStopped {
		inBreak, err := machine.IsBreakOngoing()
		if err != nil {
			return nil, false, err
		}
		if inBreak {
			_, err = machine.EndBreakIfShould()
		} else {
			_, err = machine.StartBreakIfShould()
		}
		if err != nil {
			return nil, false, err
		}
		ongoing, err = machine.Performs()
		if err != nil {
			return nil, false, err
		}
	}

	to := machine.State()
	ongoing = ongoing && to != pomodoro.StateStopped
	if to == from {
		return nil, ongoing, nil
	}
	return &pomodoro.Transition{
		From:       from,
		To:         to,
		BreakCount: machine.BreakCount(),
		At:         machine.Snapshot().At,
	}, ongoing, nil
}
