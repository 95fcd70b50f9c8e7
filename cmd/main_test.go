package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/preferences"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{25 * time.Minute, "25:00"},
		{90*time.Minute + 5*time.Second, "90:05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), "formatDuration(%s)", tt.in)
	}
}

func TestRemaining(t *testing.T) {
	config := model.NewBuilder().ConcentrationMinutes(25).BreakMinutes(5).LongerBreakMinutes(20).MustBuild()

	tests := []struct {
		name     string
		snapshot pomodoro.Snapshot
		want     time.Duration
	}{
		{"concentrating", pomodoro.Snapshot{State: pomodoro.StateConcentrating, Elapsed: 10 * time.Minute}, 15 * time.Minute},
		{"overdue", pomodoro.Snapshot{State: pomodoro.StateConcentrating, Elapsed: 40 * time.Minute}, 0},
		{"breaking", pomodoro.Snapshot{State: pomodoro.StateBreaking, Elapsed: 27 * time.Minute, SplitElapsed: 2 * time.Minute}, 3 * time.Minute},
		{"longer breaking", pomodoro.Snapshot{State: pomodoro.StateLongerBreaking, SplitElapsed: 5 * time.Minute}, 15 * time.Minute},
		{"finished", pomodoro.Snapshot{State: pomodoro.StateFinished}, 0},
		{"stopped", pomodoro.Snapshot{State: pomodoro.StateStopped}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remaining(config, tt.snapshot))
		})
	}
}

func TestStatusPrinter_Text(t *testing.T) {
	var out bytes.Buffer
	printer := &statusPrinter{out: &out, config: model.DefaultConfiguration()}

	printer.maybePrint("s1", pomodoro.Snapshot{State: pomodoro.StateConcentrating, Elapsed: 30 * time.Second})
	printer.maybePrint("s1", pomodoro.Snapshot{State: pomodoro.StateConcentrating, Elapsed: 45 * time.Second})
	printer.maybePrint("s1", pomodoro.Snapshot{State: pomodoro.StateConcentrating, Elapsed: 61 * time.Second})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "concentrating")
	assert.Contains(t, lines[0], "remaining=24:30")
	assert.Contains(t, lines[1], "elapsed=01:01")
}

func TestStatusPrinter_JSON(t *testing.T) {
	var out bytes.Buffer
	printer := &statusPrinter{out: &out, config: model.DefaultConfiguration(), json: true}

	printer.print("session-1", pomodoro.Snapshot{
		State:        pomodoro.StateBreaking,
		BreakCount:   1,
		Elapsed:      26 * time.Minute,
		SplitElapsed: time.Minute,
	})

	var line statusLine
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "session-1", line.Session)
	assert.Equal(t, pomodoro.StateBreaking, line.State)
	assert.Equal(t, 1, line.BreakCount)
	assert.Equal(t, "26:00", line.Elapsed)
	assert.Equal(t, "04:00", line.Remaining)
}

func TestApplyFlags(t *testing.T) {
	settings := preferences.DefaultSettings()

	applyFlags(&settings, options{logLevel: "debug", logDir: "/tmp/logs", tick: 250 * time.Millisecond})

	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "/tmp/logs", settings.LogDir)
	assert.Equal(t, 250*time.Millisecond, settings.TickInterval)
}

func TestApplyFlags_EmptyKeepsSettings(t *testing.T) {
	settings := preferences.DefaultSettings()

	applyFlags(&settings, options{})

	assert.Equal(t, preferences.DefaultSettings(), settings)
}
