package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines the user-editable settings of a pomodoro session.
type Settings struct {
	ConcentrationMinutes  int
	BreakMinutes          int
	LongerBreakMinutes    int
	CountUntilLongerBreak int

	LogLevel     string
	LogDir       string
	TickInterval time.Duration
}

// DefaultSettings returns default settings for a pomodoro session.
func DefaultSettings() Settings {
	return Settings{
		ConcentrationMinutes:  model.DefaultConcentrationMinutes,
		BreakMinutes:          model.DefaultBreakMinutes,
		LongerBreakMinutes:    model.DefaultLongerBreakMinutes,
		CountUntilLongerBreak: model.DefaultCountUntilLongerBreak,
		LogLevel:              "info",
		TickInterval:          time.Second,
	}
}

// Configuration converts settings to the state machine configuration.
func (settings Settings) Configuration() model.Configuration {
	return model.NewBuilder().
		ConcentrationMinutes(settings.ConcentrationMinutes).
		BreakMinutes(settings.BreakMinutes).
		LongerBreakMinutes(settings.LongerBreakMinutes).
		CountUntilLongerBreak(settings.CountUntilLongerBreak).
		MustBuild()
}
