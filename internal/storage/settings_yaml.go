package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/preferences"
)

const settingsFileName = "settings.yaml"

// ErrUnknownProfile is returned when a profile path names a profile missing from the file.
var ErrUnknownProfile = errors.New("unknown profile")

// settingsLayer holds one source of settings. Nil fields leave lower layers untouched,
// so an explicit zero in a higher layer still overrides.
type settingsLayer struct {
	Minutes struct {
		Concentration *int `yaml:"concentration,omitempty"`
		Break         *int `yaml:"break,omitempty"`
		LongerBreak   *int `yaml:"longer_break,omitempty"`
	} `yaml:"minutes"`
	Count struct {
		LongerBreak *int `yaml:"longer_break,omitempty"`
	} `yaml:"count"`
	LogLevel     *string `yaml:"log_level,omitempty"`
	LogDir       *string `yaml:"log_dir,omitempty"`
	TickInterval *string `yaml:"tick_interval,omitempty"`
}

type yamlSettings struct {
	settingsLayer `yaml:",inline"`
	Profiles      map[string]yamlSettings `yaml:"profiles,omitempty"`
}

// DefaultPath returns the settings file location under the user config directory.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads settings from the YAML file at path, applies the profiles along
// the "/"-separated profilePath, then environment overrides.
// If the file does not exist, defaults with environment overrides are returned.
func LoadSettings(path, profilePath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	var fileData yamlSettings
	rawData, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return settings, fmt.Errorf("parse settings yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	merged, err := resolveProfile(fileData, profilePath)
	if err != nil {
		return settings, err
	}
	if err := mergeLayer(&merged, environmentLayer()); err != nil {
		return settings, err
	}
	if err := applyLayer(&settings, merged); err != nil {
		return settings, err
	}
	return settings, nil
}

// SaveSettings writes settings to YAML at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var fileData yamlSettings
	fileData.Minutes.Concentration = &settings.ConcentrationMinutes
	fileData.Minutes.Break = &settings.BreakMinutes
	fileData.Minutes.LongerBreak = &settings.LongerBreakMinutes
	fileData.Count.LongerBreak = &settings.CountUntilLongerBreak
	fileData.LogLevel = &settings.LogLevel
	if settings.LogDir != "" {
		fileData.LogDir = &settings.LogDir
	}
	tick := settings.TickInterval.String()
	fileData.TickInterval = &tick

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveProfile(root yamlSettings, profilePath string) (settingsLayer, error) {
	merged := root.settingsLayer
	current := root
	walked := make([]string, 0)
	for _, name := range strings.Split(profilePath, "/") {
		if name == "" {
			continue
		}
		walked = append(walked, name)
		next, ok := current.Profiles[name]
		if !ok {
			return settingsLayer{}, fmt.Errorf("%w: %s", ErrUnknownProfile, strings.Join(walked, "/"))
		}
		if err := mergeLayer(&merged, next.settingsLayer); err != nil {
			return settingsLayer{}, err
		}
		current = next
	}
	return merged, nil
}

func mergeLayer(dst *settingsLayer, src settingsLayer) error {
	if err := mergo.Merge(dst, src, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return fmt.Errorf("merge settings: %w", err)
	}
	return nil
}

func applyLayer(settings *preferences.Settings, layer settingsLayer) error {
	if layer.Minutes.Concentration != nil {
		settings.ConcentrationMinutes = *layer.Minutes.Concentration
	}
	if layer.Minutes.Break != nil {
		settings.BreakMinutes = *layer.Minutes.Break
	}
	if layer.Minutes.LongerBreak != nil {
		settings.LongerBreakMinutes = *layer.Minutes.LongerBreak
	}
	if layer.Count.LongerBreak != nil {
		settings.CountUntilLongerBreak = *layer.Count.LongerBreak
	}
	if layer.LogLevel != nil {
		settings.LogLevel = strings.ToLower(*layer.LogLevel)
	}
	if layer.LogDir != nil {
		settings.LogDir = *layer.LogDir
	}
	if layer.TickInterval != nil {
		tick, err := time.ParseDuration(*layer.TickInterval)
		if err != nil {
			return fmt.Errorf("parse tick_interval: %w", err)
		}
		if tick > 0 {
			settings.TickInterval = tick
		}
	}
	return nil
}
