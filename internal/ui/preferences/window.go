package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	minTickMillis = 5
	maxTickMillis = 1000
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	warningLead *widget.Entry
	adjustStep  *widget.Entry
	tick        *widget.Entry
	sound       *widget.Check
	openMonitor *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("FPT clock settings")

	warningLead := widget.NewEntry()
	adjustStep := widget.NewEntry()
	tick := widget.NewEntry()

	sound := widget.NewCheck("Play the warning tone", nil)
	openMonitor := widget.NewCheck("Open the clock window at startup", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Warn before the end"), warningLead, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Add/remove step"), adjustStep, widget.NewLabel("min")),
		sound,
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Redraw every"), tick, widget.NewLabel("ms")),
		openMonitor,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		warningLead: warningLead,
		adjustStep:  adjustStep,
		tick:        tick,
		sound:       sound,
		openMonitor: openMonitor,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved values.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.warningLead.SetText(fmt.Sprintf("%d", int(settings.WarningLead/time.Second)))
	prefs.adjustStep.SetText(fmt.Sprintf("%d", int(settings.AdjustStep/time.Minute)))
	prefs.tick.SetText(fmt.Sprintf("%d", int(settings.TickInterval/time.Millisecond)))
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.openMonitor.SetChecked(settings.OpenMonitor)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.warningLead.Text); ok {
		settings.WarningLead = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(prefs.adjustStep.Text); ok {
		settings.AdjustStep = time.Duration(minutes) * time.Minute
	}
	if millis, ok := parsePositiveInt(prefs.tick.Text); ok && millis >= minTickMillis && millis <= maxTickMillis {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.OpenMonitor = prefs.openMonitor.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
