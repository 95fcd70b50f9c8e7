package pomodoro

import (
	"errors"
	"fmt"
)

// State represents the current pomodoro phase.
type State string

const (
	StateInitialized    State = "initialized"
	StateConcentrating  State = "concentrating"
	StateBreaking       State = "breaking"
	StateLongerBreaking State = "longer_breaking"
	StateFinished       State = "finished"
	StateStopped        State = "stopped"
)

// Operation identifies a Machine operation for precondition checks and error reports.
type Operation string

const (
	OpPerforms           Operation = "performs"
	OpStop               Operation = "stop"
	OpReset              Operation = "reset"
	OpShouldStartBreak   Operation = "should_start_break"
	OpIsBreakOngoing     Operation = "is_break_ongoing"
	OpShouldEndBreak     Operation = "should_end_break"
	OpStartBreak         Operation = "start_break"
	OpEndBreak           Operation = "end_break"
	OpStartBreakIfShould Operation = "start_break_if_should"
	OpEndBreakIfShould   Operation = "end_break_if_should"
)

// ErrInvalidStateTransition is matched by every precondition violation.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// InvalidStateTransitionError reports an operation attempted in a state its precondition excludes.
type InvalidStateTransitionError struct {
	Operation Operation
	State     State
}

func (err *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s not allowed in state %s", err.Operation, err.State)
}

// Is reports whether target is ErrInvalidStateTransition.
func (err *InvalidStateTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// precondition reports whether an operation may run in the given state.
type precondition func(State) bool

func anyState(State) bool { return true }

// startPrecondition gates starting a break.
func startPrecondition(state State) bool {
	switch state {
	case StateConcentrating, StateStopped:
		return true
	}
	return false
}

// breakingPrecondition gates inspecting whether a break is running. Only a machine
// that never started is rejected.
func breakingPrecondition(state State) bool {
	switch state {
	case StateConcentrating, StateBreaking, StateLongerBreaking, StateStopped, StateFinished:
		return true
	}
	return false
}

// endPrecondition gates ending a break.
func endPrecondition(state State) bool {
	switch state {
	case StateBreaking, StateLongerBreaking, StateStopped:
		return true
	}
	return false
}

var preconditions = map[Operation]precondition{
	OpPerforms:           anyState,
	OpStop:               anyState,
	OpReset:              anyState,
	OpShouldStartBreak:   startPrecondition,
	OpStartBreak:         startPrecondition,
	OpStartBreakIfShould: startPrecondition,
	OpIsBreakOngoing:     breakingPrecondition,
	OpShouldEndBreak:     endPrecondition,
	OpEndBreak:           endPrecondition,
	OpEndBreakIfShould:   endPrecondition,
}

// Allowed reports whether op may be invoked while the machine is in state.
func Allowed(op Operation, state State) bool {
	check, ok := preconditions[op]
	if !ok {
		return false
	}
	return check(state)
}

func checkState(op Operation, state State) error {
	if !Allowed(op, state) {
		return &InvalidStateTransitionError{Operation: op, State: state}
	}
	return nil
}
