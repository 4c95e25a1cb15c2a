package app

import (
	"github.com/rs/zerolog"

	"fptclock/internal/core/countdown"
)

// LogEvents writes countdown events to logger until events is closed.
func LogEvents(logger zerolog.Logger, events <-chan countdown.Event) {
	for event := range events {
		entry := logger.Info()
		if event.Type == countdown.EventWarningError {
			entry = logger.Warn()
		}
		entry = entry.
			Str("event", string(event.Type)).
			Str("state", string(event.State)).
			Int("stage", event.StageIndex)
		if event.StageIndex != countdown.Ended {
			entry = entry.
				Str("name", event.Stage.Label()).
				Dur("duration", event.Duration).
				Dur("remaining", event.Remaining)
		}
		if event.Message != "" {
			entry = entry.Str("detail", event.Message)
		}
		entry.Msg("countdown")
	}
}
