package app

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"fptclock/internal/core/countdown"
	"fptclock/internal/core/model"
	"fptclock/internal/render"
	"fptclock/internal/ui/controls"
	"fptclock/internal/ui/display"
	"fptclock/internal/ui/keymap"
	"fptclock/internal/ui/monitor"
	"fptclock/internal/ui/preferences"
	"fptclock/internal/ui/surface"
	"fptclock/internal/ui/tray"
)

// Surface names on the hub.
const (
	DisplaySurface  = "display"
	ControlsSurface = "controls"
	TraySurface     = "tray"
)

// Options configures a Controller.
type Options struct {
	Program  model.Program
	Settings preferences.Settings
	// AssetDir is searched for logo overrides.
	AssetDir string
	Clock    clockwork.Clock
	Alarm    countdown.Alarm
	// SaveSettings persists preferences edited in the settings window.
	SaveSettings func(preferences.Settings) error
}

// Controller owns the countdown and every window showing it. Commands from
// any window are routed through Dispatch.
type Controller struct {
	app       fyne.App
	countdown *countdown.Countdown
	hub       *surface.Hub
	display   *display.Window
	controls  *controls.Window
	monitor   *monitor.Monitor
	prefs     *preferences.Window
	tray      *tray.Manager
	settings  preferences.Settings
	save      func(preferences.Settings) error
	cancel    context.CancelFunc
}

// New builds the countdown and the windows for options.Program.
func New(fyneApp fyne.App, options Options) (*Controller, error) {
	if fyneApp == nil {
		return nil, errors.New("fyne app is required")
	}
	clock := options.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	clockState, err := countdown.New(options.Program, clock, options.Settings.CountdownConfig())
	if err != nil {
		return nil, err
	}
	if options.Alarm != nil {
		clockState.SetAlarm(options.Alarm)
	}

	controller := &Controller{
		app:       fyneApp,
		countdown: clockState,
		hub:       surface.NewHub(clockState, clock, options.Settings.TickInterval),
		settings:  options.Settings,
		save:      options.SaveSettings,
	}

	controller.display = display.New(fyneApp, display.Config{AssetDir: options.AssetDir})
	keymap.Bind(controller.display.Window(), keymap.Global(), controller.Dispatch)
	controller.display.SetOnClosed(controller.Stop)

	controller.controls = controls.New(fyneApp, clockState.Program(), controls.Callbacks{
		OnCommand:  controller.Dispatch,
		OnSelect:   controller.Select,
		OnSettings: controller.ShowSettings,
	})
	controller.monitor = monitor.New(fyneApp, controller.hub, controller.Dispatch)
	controller.prefs = preferences.New(fyneApp, options.Settings, controller.ApplySettings)

	controller.hub.Attach(DisplaySurface, controller.display)
	controller.hub.Attach(ControlsSurface, controller.controls)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		controller.tray = tray.New(desktopApp, tray.Callbacks{
			OnNext:        func() { controller.Dispatch(keymap.CommandNext) },
			OnPrevious:    func() { controller.Dispatch(keymap.CommandPrevious) },
			OnTogglePause: func() { controller.Dispatch(keymap.CommandTogglePause) },
			OnMonitor:     func() { controller.Dispatch(keymap.CommandOpenMonitor) },
			OnQuit:        controller.Quit,
		})
		if icon := fyneApp.Icon(); icon != nil {
			desktopApp.SetSystemTrayIcon(icon)
		}
		controller.hub.Attach(TraySurface, controller.tray)
	}

	return controller, nil
}

// Countdown returns the shared countdown.
func (controller *Controller) Countdown() *countdown.Countdown {
	return controller.countdown
}

// Hub returns the surface hub.
func (controller *Controller) Hub() *surface.Hub {
	return controller.hub
}

// Monitor returns the confidence monitor.
func (controller *Controller) Monitor() *monitor.Monitor {
	return controller.monitor
}

// Settings returns the active preferences.
func (controller *Controller) Settings() preferences.Settings {
	return controller.settings
}

// Start shows the windows and begins ticking until ctx is cancelled or the
// main window closes.
func (controller *Controller) Start(ctx context.Context) {
	ctx, controller.cancel = context.WithCancel(ctx)

	controller.display.Show()
	controller.controls.Show()
	if controller.settings.OpenMonitor {
		controller.monitor.Open()
	}
	controller.hub.Refresh()

	go controller.hub.Run(ctx)
	log.Info().Int("stages", len(controller.countdown.Program())).Msg("clock started")
}

// Stop halts ticking and closes the countdown observers.
func (controller *Controller) Stop() {
	if controller.cancel != nil {
		controller.cancel()
	}
	controller.countdown.Close()
}

// Quit stops the clock and exits the application.
func (controller *Controller) Quit() {
	controller.Stop()
	controller.app.Quit()
}

// Dispatch executes an operator command and redraws immediately. It must run
// on the UI goroutine.
func (controller *Controller) Dispatch(command keymap.Command) {
	log.Debug().Stringer("command", command).Msg("command")

	switch command {
	case keymap.CommandNext:
		controller.countdown.Step(1)
	case keymap.CommandPrevious:
		controller.countdown.Step(-1)
	case keymap.CommandTogglePause:
		controller.countdown.TogglePause()
	case keymap.CommandAddStep:
		controller.countdown.AddSteps(1)
	case keymap.CommandRemoveStep:
		controller.countdown.AddSteps(-1)
	case keymap.CommandEnd:
		controller.countdown.End()
		controller.controls.ResetPauseLabel()
	case keymap.CommandReposition:
		controller.display.Window().CenterOnScreen()
		controller.controls.Window().CenterOnScreen()
		return
	case keymap.CommandOpenMonitor:
		controller.monitor.Open()
		return
	case keymap.CommandCloseMonitor:
		controller.monitor.Close()
		return
	default:
		return
	}
	controller.hub.Refresh()
}

// Select jumps to stage index, as picked in the controls list. Selecting the
// current stage does nothing.
func (controller *Controller) Select(index int) {
	if index == controller.countdown.Index() {
		return
	}
	controller.countdown.Advance(index)
	controller.hub.Refresh()
}

// ShowSettings opens the preferences window.
func (controller *Controller) ShowSettings() {
	controller.prefs.Show()
}

// ApplySettings updates the running clock and persists settings.
func (controller *Controller) ApplySettings(settings preferences.Settings) {
	controller.settings = settings
	controller.countdown.UpdateConfig(settings.CountdownConfig())
	controller.hub.SetInterval(settings.TickInterval)

	if controller.save == nil {
		return
	}
	if err := controller.save(settings); err != nil {
		log.Warn().Err(err).Msg("save settings")
	}
}

// Frame returns the frame most recently pushed to the surfaces.
func (controller *Controller) Frame() render.Frame {
	frame, _ := controller.hub.Last()
	return frame
}
