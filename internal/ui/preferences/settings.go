package preferences

import (
	"time"

	"fptclock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WarningLead  time.Duration
	AdjustStep   time.Duration
	SoundEnabled bool
	TickInterval time.Duration
	OpenMonitor  bool
}

// DefaultSettings returns default settings for the clock.
func DefaultSettings() Settings {
	return Settings{
		WarningLead:  10 * time.Second,
		AdjustStep:   time.Minute,
		SoundEnabled: true,
		TickInterval: 10 * time.Millisecond,
		OpenMonitor:  false,
	}
}

// CountdownConfig converts settings to a CountdownConfig.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	config := model.DefaultCountdownConfig()
	if settings.WarningLead > 0 {
		config.WarningLead = settings.WarningLead
	}
	if settings.AdjustStep > 0 {
		config.AdjustStep = settings.AdjustStep
	}
	config.SoundEnabled = settings.SoundEnabled
	return config
}
