package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"fptclock/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WarningLeadSeconds int   `yaml:"warning_lead_seconds"`
	AdjustStepMinutes  int   `yaml:"adjust_step_minutes"`
	SoundEnabled       *bool `yaml:"sound_enabled"`
	TickIntervalMillis int   `yaml:"tick_interval_millis"`
	OpenMonitor        bool  `yaml:"open_monitor"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundEnabled := settings.SoundEnabled
	fileData := yamlSettings{
		WarningLeadSeconds: int(settings.WarningLead / time.Second),
		AdjustStepMinutes:  int(settings.AdjustStep / time.Minute),
		SoundEnabled:       &soundEnabled,
		TickIntervalMillis: int(settings.TickInterval / time.Millisecond),
		OpenMonitor:        settings.OpenMonitor,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the location of the settings file.
func SettingsPath(appName string) (string, error) {
	return resolveConfigPath(appName)
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WarningLeadSeconds > 0 {
		settings.WarningLead = time.Duration(fileData.WarningLeadSeconds) * time.Second
	}
	if fileData.AdjustStepMinutes > 0 {
		settings.AdjustStep = time.Duration(fileData.AdjustStepMinutes) * time.Minute
	}
	if fileData.TickIntervalMillis >= 5 && fileData.TickIntervalMillis <= 1000 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMillis) * time.Millisecond
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	settings.OpenMonitor = fileData.OpenMonitor
}
