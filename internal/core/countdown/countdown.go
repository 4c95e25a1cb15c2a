package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"fptclock/internal/core/model"
)

var (
	// ErrEmptyProgram indicates a countdown was requested without stages.
	ErrEmptyProgram = errors.New("stage program is empty")
	// ErrInvalidDuration indicates a stage with a non-positive duration.
	ErrInvalidDuration = errors.New("stage duration must be positive")
)

// Alarm plays the audible warning.
type Alarm interface {
	Play() error
	Stop()
}

// Countdown tracks elapsed time for the current stage of a program.
//
// The clock opens held (paused) on the first stage. Elapsed time is
// now - start - accumulated pause, frozen at the pause instant while held.
type Countdown struct {
	mu               sync.Mutex
	clock            clockwork.Clock
	config           model.CountdownConfig
	program          model.Program
	index            int
	duration         time.Duration
	startedAt        time.Time
	pausedAt         time.Time
	accumulatedPause time.Duration
	paused           bool
	overtime         bool
	armed            bool
	lastRemaining    time.Duration
	tracked          bool
	alarm            Alarm
	events           []chan Event
	closed           bool
}

// New creates a countdown positioned on the first stage of program.
func New(program model.Program, clock clockwork.Clock, config model.CountdownConfig) (*Countdown, error) {
	if len(program) == 0 {
		return nil, ErrEmptyProgram
	}
	for i, stage := range program {
		if stage.Duration <= 0 {
			return nil, fmt.Errorf("stage %d %q: %w", i+1, stage.Label(), ErrInvalidDuration)
		}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	countdown := &Countdown{
		clock:   clock,
		config:  normalizeConfig(config),
		program: append(model.Program(nil), program...),
		paused:  true,
	}
	now := clock.Now()
	countdown.pausedAt = now
	countdown.resetStageLocked(0, now)
	return countdown, nil
}

// SetAlarm injects the warning player.
func (countdown *Countdown) SetAlarm(alarm Alarm) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.alarm = alarm
}

// Program returns a copy of the loaded stages.
func (countdown *Countdown) Program() model.Program {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return append(model.Program(nil), countdown.program...)
}

// Index returns the current stage index, or Ended.
func (countdown *Countdown) Index() int {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.index
}

// Config returns the active configuration.
func (countdown *Countdown) Config() model.CountdownConfig {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.config
}

// UpdateConfig replaces the runtime configuration.
func (countdown *Countdown) UpdateConfig(config model.CountdownConfig) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.config = normalizeConfig(config)
	if !countdown.config.SoundEnabled {
		countdown.stopAlarmLocked()
	}
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.closed {
		close(ch)
		return ch
	}
	countdown.events = append(countdown.events, ch)
	return ch
}

// Close stops any warning and closes observers.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	if countdown.closed {
		countdown.mu.Unlock()
		return
	}
	countdown.closed = true
	countdown.stopAlarmLocked()
	events := countdown.events
	countdown.events = nil
	countdown.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start releases the hold and runs the current stage.
func (countdown *Countdown) Start() {
	countdown.Resume()
}

// Pause freezes elapsed time.
func (countdown *Countdown) Pause() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.holdLocked(countdown.clock.Now())
}

// Resume unfreezes elapsed time; the held span is added to the pause offset.
func (countdown *Countdown) Resume() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.resumeLocked(countdown.clock.Now())
}

// TogglePause flips the hold and returns the new paused flag.
func (countdown *Countdown) TogglePause() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	now := countdown.clock.Now()
	if countdown.paused {
		countdown.resumeLocked(now)
	} else {
		countdown.holdLocked(now)
	}
	return countdown.paused
}

// Paused reports whether the clock is held.
func (countdown *Countdown) Paused() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.paused
}

// Advance moves to stage index with elapsed reset to zero. The hold flag is
// kept. An index outside the program ends the sequence.
func (countdown *Countdown) Advance(index int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.advanceLocked(index, countdown.clock.Now())
}

// Step advances relative to the current stage. Once ended, stepping forward
// restarts at the first stage and stepping back resumes at the last one.
func (countdown *Countdown) Step(delta int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.stepLocked(delta, countdown.clock.Now())
}

// End holds the clock and steps to the next stage.
func (countdown *Countdown) End() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	now := countdown.clock.Now()
	countdown.holdLocked(now)
	countdown.stepLocked(1, now)
}

// EndAt holds the clock and moves to stage index.
func (countdown *Countdown) EndAt(index int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	now := countdown.clock.Now()
	countdown.holdLocked(now)
	countdown.advanceLocked(index, now)
}

// AddTime adjusts the current stage duration by delta and returns the delta
// actually applied.
//
// The duration never becomes non-positive: when delta would drive it to zero
// or below, delta is halved and reapplied until the result is positive. A
// delta that halves down to nothing leaves the duration unchanged.
func (countdown *Countdown) AddTime(delta time.Duration) time.Duration {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.index == Ended || delta == 0 {
		return 0
	}

	applied := halveUntilPositive(countdown.duration, delta)
	if applied == 0 {
		return 0
	}
	countdown.duration += applied
	countdown.stopAlarmLocked()
	countdown.armed = true
	countdown.tracked = false

	now := countdown.clock.Now()
	remaining := countdown.duration - countdown.elapsedLocked(now)
	countdown.emitLocked(Event{
		Type:       EventDurationChange,
		State:      countdown.stateLocked(now),
		StageIndex: countdown.index,
		Stage:      countdown.program[countdown.index],
		Duration:   countdown.duration,
		Remaining:  remaining,
		Message:    fmt.Sprintf("duration adjusted by %s", applied),
		At:         now,
	})
	return applied
}

// AddSteps adjusts the duration by steps times the configured step.
func (countdown *Countdown) AddSteps(steps int) time.Duration {
	countdown.mu.Lock()
	step := countdown.config.AdjustStep
	countdown.mu.Unlock()
	return countdown.AddTime(time.Duration(steps) * step)
}

// Tick recomputes the countdown, fires the warning when due and returns the
// resulting snapshot.
func (countdown *Countdown) Tick() Snapshot {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	now := countdown.clock.Now()
	snapshot := countdown.snapshotLocked(now)
	if snapshot.Ended() {
		return snapshot
	}

	if snapshot.Overtime && !countdown.overtime {
		countdown.emitLocked(Event{
			Type:       EventOvertime,
			State:      snapshot.State,
			StageIndex: snapshot.StageIndex,
			Stage:      snapshot.Stage,
			Duration:   snapshot.Duration,
			Remaining:  snapshot.Remaining,
			At:         now,
		})
	}
	countdown.overtime = snapshot.Overtime
	countdown.maybeWarnLocked(snapshot)
	return snapshot
}

// Snapshot returns the current view without side effects.
func (countdown *Countdown) Snapshot() Snapshot {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.snapshotLocked(countdown.clock.Now())
}

func (countdown *Countdown) snapshotLocked(now time.Time) Snapshot {
	if countdown.index == Ended {
		return Snapshot{
			State:      StateEnded,
			StageIndex: Ended,
			Paused:     countdown.paused,
			At:         now,
		}
	}

	elapsed := countdown.elapsedLocked(now)
	return Snapshot{
		State:          countdown.stateLocked(now),
		StageIndex:     countdown.index,
		Stage:          countdown.program[countdown.index],
		Duration:       countdown.duration,
		Elapsed:        elapsed,
		Remaining:      countdown.duration - elapsed,
		Paused:         countdown.paused,
		Overtime:       elapsed >= countdown.duration,
		DoubleOvertime: elapsed > 2*countdown.duration,
		At:             now,
	}
}

func (countdown *Countdown) stateLocked(now time.Time) State {
	switch {
	case countdown.index == Ended:
		return StateEnded
	case countdown.paused:
		return StatePaused
	case countdown.elapsedLocked(now) >= countdown.duration:
		return StateOvertime
	default:
		return StateRunning
	}
}

func (countdown *Countdown) elapsedLocked(now time.Time) time.Duration {
	reference := now
	if countdown.paused {
		reference = countdown.pausedAt
	}
	elapsed := reference.Sub(countdown.startedAt) - countdown.accumulatedPause
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (countdown *Countdown) holdLocked(now time.Time) {
	if countdown.paused {
		return
	}
	countdown.paused = true
	countdown.pausedAt = now
	countdown.stopAlarmLocked()
	countdown.emitStageLocked(EventPause, now)
}

func (countdown *Countdown) resumeLocked(now time.Time) {
	if !countdown.paused || countdown.index == Ended {
		return
	}
	countdown.accumulatedPause += now.Sub(countdown.pausedAt)
	countdown.paused = false
	countdown.emitStageLocked(EventResume, now)
}

func (countdown *Countdown) stepLocked(delta int, now time.Time) {
	target := countdown.index + delta
	if countdown.index == Ended {
		switch {
		case delta > 0:
			target = 0
		case delta < 0:
			target = len(countdown.program) - 1
		default:
			return
		}
	}
	countdown.advanceLocked(target, now)
}

func (countdown *Countdown) advanceLocked(index int, now time.Time) {
	if !countdown.program.Valid(index) {
		countdown.endLocked(now)
		return
	}
	countdown.resetStageLocked(index, now)
	countdown.emitStageLocked(EventStageChange, now)
}

func (countdown *Countdown) endLocked(now time.Time) {
	if countdown.index == Ended {
		return
	}
	countdown.holdLocked(now)
	countdown.index = Ended
	countdown.duration = 0
	countdown.overtime = false
	countdown.armed = false
	countdown.stopAlarmLocked()
	countdown.emitLocked(Event{
		Type:       EventEnded,
		State:      StateEnded,
		StageIndex: Ended,
		At:         now,
	})
}

func (countdown *Countdown) resetStageLocked(index int, now time.Time) {
	countdown.index = index
	countdown.duration = countdown.program[index].Duration
	countdown.startedAt = now
	countdown.accumulatedPause = 0
	if countdown.paused {
		countdown.pausedAt = now
	}
	countdown.overtime = false
	countdown.stopAlarmLocked()
	countdown.armed = true
	countdown.tracked = false
}

// maybeWarnLocked fires inside (lead - window, lead), or on the first tick
// below lead after a tick at or above it in the same arming cycle.
func (countdown *Countdown) maybeWarnLocked(snapshot Snapshot) {
	previous, tracked := countdown.lastRemaining, countdown.tracked
	countdown.lastRemaining = snapshot.Remaining
	countdown.tracked = true

	if !countdown.armed || countdown.paused {
		return
	}
	if !snapshot.Stage.Sound || !countdown.config.SoundEnabled {
		return
	}
	lead := countdown.config.WarningLead
	if snapshot.Remaining >= lead {
		return
	}
	inWindow := snapshot.Remaining > lead-countdown.config.WarningWindow
	crossed := tracked && previous >= lead
	if !inWindow && !crossed {
		return
	}

	countdown.armed = false
	countdown.emitLocked(Event{
		Type:       EventWarning,
		State:      snapshot.State,
		StageIndex: snapshot.StageIndex,
		Stage:      snapshot.Stage,
		Duration:   snapshot.Duration,
		Remaining:  snapshot.Remaining,
		At:         snapshot.At,
	})
	if countdown.alarm == nil {
		return
	}
	if err := countdown.alarm.Play(); err != nil {
		countdown.emitLocked(Event{
			Type:       EventWarningError,
			State:      snapshot.State,
			StageIndex: snapshot.StageIndex,
			Stage:      snapshot.Stage,
			Message:    err.Error(),
			At:         snapshot.At,
		})
	}
}

func (countdown *Countdown) stopAlarmLocked() {
	if countdown.alarm != nil {
		countdown.alarm.Stop()
	}
}

func (countdown *Countdown) emitStageLocked(eventType EventType, now time.Time) {
	event := Event{
		Type:       eventType,
		State:      countdown.stateLocked(now),
		StageIndex: countdown.index,
		At:         now,
	}
	if countdown.index != Ended {
		event.Stage = countdown.program[countdown.index]
		event.Duration = countdown.duration
		event.Remaining = countdown.duration - countdown.elapsedLocked(now)
	}
	countdown.emitLocked(event)
}

func (countdown *Countdown) emitLocked(event Event) {
	for _, ch := range countdown.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func halveUntilPositive(duration, delta time.Duration) time.Duration {
	for delta != 0 && duration+delta <= 0 {
		delta /= 2
	}
	return delta
}

func normalizeConfig(config model.CountdownConfig) model.CountdownConfig {
	defaults := model.DefaultCountdownConfig()
	if config.WarningLead <= 0 {
		config.WarningLead = defaults.WarningLead
	}
	if config.WarningWindow <= 0 {
		config.WarningWindow = defaults.WarningWindow
	}
	if config.WarningWindow > config.WarningLead {
		config.WarningWindow = config.WarningLead
	}
	if config.AdjustStep <= 0 {
		config.AdjustStep = defaults.AdjustStep
	}
	return config
}
