package pomodoro

import "time"

// Snapshot is a point-in-time view of a Machine for observers such as logs and metrics.
type Snapshot struct {
	State        State         `json:"state"`
	BreakCount   int           `json:"break_count"`
	StartedAt    time.Time     `json:"started_at"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	SplitElapsed time.Duration `json:"split_elapsed_ns"`
	At           time.Time     `json:"at"`
}

// Transition records a state change observed by a driver of the Machine.
type Transition struct {
	From       State     `json:"from"`
	To         State     `json:"to"`
	BreakCount int       `json:"break_count"`
	At         time.Time `json:"at"`
}
