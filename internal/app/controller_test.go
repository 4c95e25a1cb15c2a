package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fptclock/internal/core/countdown"
	"fptclock/internal/core/model"
	"fptclock/internal/ui/keymap"
	"fptclock/internal/ui/monitor"
	"fptclock/internal/ui/preferences"
)

var program = model.Program{
	{Name: "Intro", Duration: 5 * time.Minute},
	{Name: "Talk", Duration: 20 * time.Minute, Sound: true},
	{Name: "Questions", Duration: 3 * time.Minute},
}

func newController(t *testing.T, save func(preferences.Settings) error) (*Controller, *clockwork.FakeClock) {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	clock := clockwork.NewFakeClock()
	controller, err := New(fyneApp, Options{
		Program:      program,
		Settings:     preferences.DefaultSettings(),
		Clock:        clock,
		SaveSettings: save,
	})
	require.NoError(t, err)
	t.Cleanup(controller.Stop)
	return controller, clock
}

func TestNewRejectsEmptyProgram(t *testing.T) {
	fyneApp := test.NewApp()
	defer fyneApp.Quit()

	_, err := New(fyneApp, Options{Settings: preferences.DefaultSettings()})
	require.ErrorIs(t, err, countdown.ErrEmptyProgram)
}

func TestDispatchDrivesCountdown(t *testing.T) {
	controller, clock := newController(t, nil)
	controller.Hub().Refresh()
	assert.True(t, controller.Frame().Paused)
	assert.Equal(t, "05:00", controller.Frame().Text)

	controller.Dispatch(keymap.CommandTogglePause)
	clock.Advance(30 * time.Second)
	controller.Hub().Refresh()
	assert.False(t, controller.Frame().Paused)
	assert.Equal(t, "04:30", controller.Frame().Text)

	controller.Dispatch(keymap.CommandAddStep)
	assert.Equal(t, "05:30", controller.Frame().Text)

	controller.Dispatch(keymap.CommandRemoveStep)
	assert.Equal(t, "04:30", controller.Frame().Text)

	controller.Dispatch(keymap.CommandNext)
	assert.Equal(t, 1, controller.Frame().StageIndex)
	assert.False(t, controller.Frame().Paused)

	controller.Dispatch(keymap.CommandEnd)
	assert.Equal(t, 2, controller.Frame().StageIndex)
	assert.True(t, controller.Frame().Paused)

	controller.Dispatch(keymap.CommandNext)
	assert.True(t, controller.Frame().Ended)

	controller.Dispatch(keymap.CommandPrevious)
	assert.Equal(t, 2, controller.Frame().StageIndex)
}

func TestPauseLabelResetsOnlyOnEnd(t *testing.T) {
	controller, _ := newController(t, nil)
	controller.Hub().Refresh()
	assert.Equal(t, "Start (P)", controller.controls.PauseLabel())

	controller.Dispatch(keymap.CommandTogglePause)
	assert.Equal(t, "Pause again (P)", controller.controls.PauseLabel())

	controller.Dispatch(keymap.CommandTogglePause)
	controller.Dispatch(keymap.CommandNext)
	assert.Equal(t, "Start again (P)", controller.controls.PauseLabel())

	controller.Dispatch(keymap.CommandEnd)
	assert.Equal(t, "Start (P)", controller.controls.PauseLabel())
}

func TestSelectIgnoresCurrentStage(t *testing.T) {
	controller, clock := newController(t, nil)
	controller.Dispatch(keymap.CommandTogglePause)
	clock.Advance(time.Minute)

	controller.Select(0)
	assert.Equal(t, time.Minute, controller.Countdown().Snapshot().Elapsed)

	controller.Select(2)
	snapshot := controller.Countdown().Snapshot()
	assert.Equal(t, 2, snapshot.StageIndex)
	assert.Zero(t, snapshot.Elapsed)
}

func TestMonitorCommands(t *testing.T) {
	controller, _ := newController(t, nil)

	controller.Dispatch(keymap.CommandOpenMonitor)
	assert.True(t, controller.Monitor().IsOpen())
	assert.True(t, controller.Hub().Attached(monitor.SurfaceName))

	controller.Dispatch(keymap.CommandCloseMonitor)
	assert.False(t, controller.Monitor().IsOpen())
	assert.False(t, controller.Hub().Attached(monitor.SurfaceName))
}

func TestApplySettingsUpdatesCountdownAndSaves(t *testing.T) {
	var saved []preferences.Settings
	controller, _ := newController(t, func(settings preferences.Settings) error {
		saved = append(saved, settings)
		return errors.New("disk full")
	})

	settings := preferences.DefaultSettings()
	settings.AdjustStep = 2 * time.Minute
	settings.SoundEnabled = false
	settings.TickInterval = 50 * time.Millisecond
	controller.ApplySettings(settings)
	assert.Equal(t, 50*time.Millisecond, controller.Hub().Interval())

	assert.Equal(t, settings, controller.Settings())
	assert.Equal(t, 2*time.Minute, controller.Countdown().Config().AdjustStep)
	assert.False(t, controller.Countdown().Config().SoundEnabled)
	require.Len(t, saved, 1)

	controller.Dispatch(keymap.CommandAddStep)
	assert.Equal(t, "07:00", controller.Frame().Text)
}

func TestLogEvents(t *testing.T) {
	controller, _ := newController(t, nil)
	events := controller.Countdown().Subscribe(8)

	controller.Dispatch(keymap.CommandTogglePause)
	controller.Dispatch(keymap.CommandNext)
	controller.Stop()

	var out bytes.Buffer
	LogEvents(zerolog.New(&out), events)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"event":"resume"`)
	assert.Contains(t, lines[1], `"event":"stage_change"`)
	assert.Contains(t, lines[1], `"name":"Talk"`)
}
