package countdown

import (
	"time"

	"fptclock/internal/core/model"
)

// State represents the current countdown mode.
type State string

const (
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateOvertime State = "overtime"
	StateEnded    State = "ended"
)

// Ended is the stage index reported once the program has run off either end.
const Ended = -1

// EventType defines the type of countdown event.
type EventType string

const (
	EventStageChange    EventType = "stage_change"
	EventPause          EventType = "pause"
	EventResume         EventType = "resume"
	EventOvertime       EventType = "overtime"
	EventWarning        EventType = "warning"
	EventWarningError   EventType = "warning_error"
	EventDurationChange EventType = "duration_change"
	EventEnded          EventType = "ended"
)

// Event represents a countdown update for observers.
type Event struct {
	Type       EventType
	State      State
	StageIndex int
	Stage      model.Stage
	Duration   time.Duration
	Remaining  time.Duration
	Message    string
	At         time.Time
}

// Snapshot is the derived view of the countdown at one instant.
type Snapshot struct {
	State          State
	StageIndex     int
	Stage          model.Stage
	Duration       time.Duration
	Elapsed        time.Duration
	Remaining      time.Duration
	Paused         bool
	Overtime       bool
	// DoubleOvertime is set once elapsed exceeds twice the duration.
	DoubleOvertime bool
	At             time.Time
}

// Ended reports whether the program has finished.
func (snapshot Snapshot) Ended() bool {
	return snapshot.StageIndex == Ended
}
