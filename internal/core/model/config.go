package model

import "time"

// CountdownConfig contains runtime settings for the countdown state machine.
type CountdownConfig struct {
	// WarningLead is the remaining time at which the warning tone fires.
	WarningLead time.Duration
	// WarningWindow is how far below WarningLead the tone may still fire.
	WarningWindow time.Duration
	// AdjustStep is the duration added or removed by one adjustment.
	AdjustStep   time.Duration
	SoundEnabled bool
}

// DefaultCountdownConfig returns the stock countdown settings.
func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{
		WarningLead:   10 * time.Second,
		WarningWindow: 500 * time.Millisecond,
		AdjustStep:    time.Minute,
		SoundEnabled:  true,
	}
}
