package monitor

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"

	"fptclock/internal/render"
	"fptclock/internal/ui/keymap"
	"fptclock/internal/ui/surface"
)

// Title of the confidence monitor.
const Title = "Clock window"

// Name the monitor registers under on the surface hub.
const SurfaceName = "monitor"

const (
	monitorWidth  = float32(180)
	monitorHeight = float32(100)
	countdownSize = float32(26)
	labelSize     = float32(15)
)

var (
	normalColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	overtimeColor = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
)

// Registry is the part of the surface hub the monitor uses.
type Registry interface {
	Attach(name string, target surface.Surface)
	Detach(name string)
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Monitor is the small undecorated window used as a speaker's confidence
// monitor. It holds no window while closed.
type Monitor struct {
	app      fyne.App
	registry Registry
	dispatch func(keymap.Command)

	window    fyne.Window
	countdown *canvas.Text
	label     *canvas.Text
	style     render.Style
}

// New creates a closed monitor. Opening attaches it to registry; dispatch
// receives the commands typed into it.
func New(app fyne.App, registry Registry, dispatch func(keymap.Command)) *Monitor {
	return &Monitor{
		app:      app,
		registry: registry,
		dispatch: dispatch,
		style:    render.StyleNormal,
	}
}

// IsOpen reports whether the monitor window exists.
func (monitor *Monitor) IsOpen() bool {
	return monitor.window != nil
}

// Window returns the open window, or nil.
func (monitor *Monitor) Window() fyne.Window {
	return monitor.window
}

// Open shows the monitor, creating it when needed.
func (monitor *Monitor) Open() {
	if monitor.window != nil {
		monitor.window.RequestFocus()
		return
	}

	window := monitor.app.NewWindow(Title)
	if driver, ok := monitor.app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
		window.SetTitle(Title)
	}
	if monitor.app.Icon() != nil {
		window.SetIcon(monitor.app.Icon())
	}
	window.SetPadded(false)

	monitor.countdown = canvas.NewText("--:--", normalColor)
	monitor.countdown.Alignment = fyne.TextAlignCenter
	monitor.countdown.TextSize = countdownSize

	monitor.label = canvas.NewText("", normalColor)
	monitor.label.Alignment = fyne.TextAlignCenter
	monitor.label.TextSize = labelSize

	background := canvas.NewRectangle(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	content := container.NewVBox(layout.NewSpacer(), monitor.countdown, monitor.label, layout.NewSpacer())
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(monitorWidth, monitorHeight))
	window.SetFixedSize(true)
	keymap.Bind(window, keymap.Monitor(), monitor.handleCommand)
	window.SetOnClosed(monitor.forget)

	monitor.window = window
	monitor.style = render.StyleNormal
	window.Show()
	if monitor.registry != nil {
		monitor.registry.Attach(SurfaceName, monitor)
	}
}

// Close hides and releases the monitor window.
func (monitor *Monitor) Close() {
	window := monitor.window
	if window == nil {
		return
	}
	monitor.forget()
	window.Close()
}

// Render draws frame while the monitor is open.
func (monitor *Monitor) Render(frame render.Frame) {
	if monitor.window == nil {
		return
	}
	if monitor.countdown.Text != frame.Text || monitor.style != frame.Style {
		monitor.countdown.Text = frame.Text
		monitor.applyStyle(frame.Style)
		monitor.countdown.Refresh()
	}
	if monitor.label.Text != frame.Label {
		monitor.label.Text = frame.Label
		monitor.label.Refresh()
	}
}

func (monitor *Monitor) applyStyle(style render.Style) {
	monitor.style = style
	switch style {
	case render.StyleOvertime:
		monitor.countdown.TextStyle = fyne.TextStyle{Bold: true}
		monitor.countdown.Color = overtimeColor
	case render.StylePaused:
		monitor.countdown.TextStyle = fyne.TextStyle{Bold: true}
		monitor.countdown.Color = normalColor
	default:
		monitor.countdown.TextStyle = fyne.TextStyle{}
		monitor.countdown.Color = normalColor
	}
}

func (monitor *Monitor) handleCommand(command keymap.Command) {
	if command == keymap.CommandCloseMonitor {
		monitor.Close()
		return
	}
	if monitor.dispatch != nil {
		monitor.dispatch(command)
	}
}

func (monitor *Monitor) forget() {
	if monitor.window == nil {
		return
	}
	if monitor.registry != nil {
		monitor.registry.Detach(SurfaceName)
	}
	monitor.window = nil
	monitor.countdown = nil
	monitor.label = nil
}
