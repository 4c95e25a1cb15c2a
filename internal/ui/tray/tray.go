package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"fptclock/internal/render"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnNext        func()
	OnPrevious    func()
	OnTogglePause func()
	OnMonitor     func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	menu       *fyne.Menu
	callbacks  Callbacks
	status     string
	paused     bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		paused:    true,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnTogglePause))

	manager.menu = fyne.NewMenu("FPT clock",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next", invoke(&manager.callbacks.OnNext)),
		fyne.NewMenuItem("Previous", invoke(&manager.callbacks.OnPrevious)),
		manager.pauseItem,
		fyne.NewMenuItem("Help clock window", invoke(&manager.callbacks.OnMonitor)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	manager.refreshMenu()

	return manager
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// Status returns the current status label.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Render updates the status line and the pause item from frame. The menu is
// only refreshed when its text changes.
func (manager *Manager) Render(frame render.Frame) {
	status := StatusText(frame)
	if status == manager.status && frame.Paused == manager.paused {
		return
	}
	manager.status = status
	manager.paused = frame.Paused
	manager.statusItem.Label = status
	if frame.Paused {
		manager.pauseItem.Label = "Start"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

// StatusText is the tray status line for frame.
func StatusText(frame render.Frame) string {
	if frame.Ended {
		return "End"
	}
	status := fmt.Sprintf("%s · %s", frame.Label, frame.Text)
	if frame.Paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return status
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
