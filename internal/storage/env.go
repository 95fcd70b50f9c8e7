package storage

import (
	"os"
	"strconv"
	"time"

	"pomodoro/internal/logger"
)

// Environment variables overriding the settings file.
const (
	EnvConcentrationMinutes  = "POMODORO_MINUTES_CONCENTRATION"
	EnvBreakMinutes          = "POMODORO_MINUTES_BREAK"
	EnvLongerBreakMinutes    = "POMODORO_MINUTES_LONGER_BREAK"
	EnvCountUntilLongerBreak = "POMODORO_COUNT_LONGER_BREAK"
	EnvLogLevel              = "POMODORO_LOG_LEVEL"
	EnvLogDir                = "POMODORO_LOG_DIR"
	EnvTickInterval          = "POMODORO_TICK_INTERVAL"
)

func environmentLayer() settingsLayer {
	var layer settingsLayer
	layer.Minutes.Concentration = getEnvInt(EnvConcentrationMinutes)
	layer.Minutes.Break = getEnvInt(EnvBreakMinutes)
	layer.Minutes.LongerBreak = getEnvInt(EnvLongerBreakMinutes)
	layer.Count.LongerBreak = getEnvInt(EnvCountUntilLongerBreak)
	layer.LogLevel = getEnv(EnvLogLevel)
	layer.LogDir = getEnv(EnvLogDir)
	layer.TickInterval = getEnvDuration(EnvTickInterval)
	return layer
}

// getEnv returns the environment variable value, or nil if not set.
func getEnv(key string) *string {
	if value := os.Getenv(key); value != "" {
		return &value
	}
	return nil
}

// getEnvInt returns the environment variable as an int, or nil if not set or invalid.
func getEnvInt(key string) *int {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		logger.Warnf("Ignoring %s=%q: not an integer", key, value)
		return nil
	}
	return &i
}

// getEnvDuration returns the environment variable if it is a valid Go duration string
// like "500ms" or "2s", or nil otherwise.
func getEnvDuration(key string) *string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	if _, err := time.ParseDuration(value); err != nil {
		logger.Warnf("Ignoring %s=%q: not a duration", key, value)
		return nil
	}
	return &value
}
