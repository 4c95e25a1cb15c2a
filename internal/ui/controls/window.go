package controls

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fptclock/internal/core/countdown"
	"fptclock/internal/core/model"
	"fptclock/internal/render"
	"fptclock/internal/ui/keymap"
)

// Title of the operator window.
const Title = "FPT clock controls"

const (
	labelStart      = "Start (P)"
	labelPauseAgain = "Pause again (P)"
	labelStartAgain = "Start again (P)"
)

// Callbacks defines operator action handlers.
type Callbacks struct {
	OnCommand  func(keymap.Command)
	OnSelect   func(index int)
	OnSettings func()
}

// Window is the operator panel: countdown text, the stage list and one button
// per command.
type Window struct {
	window      fyne.Window
	program     model.Program
	callbacks   Callbacks
	countdown   *widget.Label
	list        *widget.List
	pauseButton *widget.Button
	selected    int
	// started is set once the clock has run since the last End.
	started bool
}

// New creates the controls window for program.
func New(app fyne.App, program model.Program, callbacks Callbacks) *Window {
	window := app.NewWindow(Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	controls := &Window{
		window:    window,
		program:   program,
		callbacks: callbacks,
		selected:  countdown.Ended,
	}

	controls.countdown = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	controls.countdown.SizeName = theme.SizeNameHeadingText

	controls.list = widget.NewList(
		func() int { return len(controls.program) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(ItemText(controls.program[id]))
		},
	)
	controls.list.OnSelected = controls.handleSelected

	controls.pauseButton = widget.NewButton(labelStart, controls.command(keymap.CommandTogglePause))
	buttons := container.NewVBox(
		widget.NewButton("Next (N)", controls.command(keymap.CommandNext)),
		widget.NewButton("Previous (B)", controls.command(keymap.CommandPrevious)),
		controls.pauseButton,
		widget.NewButton("Add 1 minute (M)", controls.command(keymap.CommandAddStep)),
		widget.NewButton("Remove 1 minute (R)", controls.command(keymap.CommandRemoveStep)),
		widget.NewButton("Next and Stop (E)", controls.command(keymap.CommandEnd)),
		widget.NewButton("Help clock window", controls.command(keymap.CommandOpenMonitor)),
		widget.NewButton("Settings", func() {
			if controls.callbacks.OnSettings != nil {
				controls.callbacks.OnSettings()
			}
		}),
	)

	window.SetContent(container.NewBorder(controls.countdown, buttons, nil, nil, controls.list))
	window.Resize(fyne.NewSize(360, 520))
	keymap.Bind(window, keymap.Global(), controls.dispatch)

	return controls
}

// ItemText is the stage list entry: the label and the duration in seconds.
func ItemText(stage model.Stage) string {
	return fmt.Sprintf("%s (duration : %d s)", strings.ReplaceAll(stage.Name, model.LineBreak, ""), int64(stage.Duration/time.Second))
}

// Window exposes the underlying Fyne window.
func (controls *Window) Window() fyne.Window {
	return controls.window
}

// Show displays the window.
func (controls *Window) Show() {
	controls.window.Show()
}

// Render updates the countdown text, the list selection and the pause button.
func (controls *Window) Render(frame render.Frame) {
	if controls.countdown.Text != frame.Text {
		controls.countdown.SetText(frame.Text)
	}

	if !frame.Paused {
		controls.started = true
	}
	controls.setPauseLabel(frame.Paused)

	if frame.StageIndex == controls.selected {
		return
	}
	controls.selected = frame.StageIndex
	if frame.Ended {
		controls.list.UnselectAll()
		return
	}
	controls.list.Select(frame.StageIndex)
	controls.list.ScrollTo(frame.StageIndex)
}

// ResetPauseLabel returns the pause button to "Start (P)" after End.
func (controls *Window) ResetPauseLabel() {
	controls.started = false
	controls.setPauseLabel(true)
}

// PauseLabel returns the current pause button text.
func (controls *Window) PauseLabel() string {
	return controls.pauseButton.Text
}

func (controls *Window) setPauseLabel(paused bool) {
	label := labelStart
	switch {
	case !paused:
		label = labelPauseAgain
	case controls.started:
		label = labelStartAgain
	}
	if controls.pauseButton.Text != label {
		controls.pauseButton.SetText(label)
	}
}

func (controls *Window) handleSelected(id widget.ListItemID) {
	if id == controls.selected {
		return
	}
	controls.selected = id
	if controls.callbacks.OnSelect != nil {
		controls.callbacks.OnSelect(id)
	}
}

func (controls *Window) command(command keymap.Command) func() {
	return func() {
		controls.dispatch(command)
	}
}

func (controls *Window) dispatch(command keymap.Command) {
	if controls.callbacks.OnCommand != nil {
		controls.callbacks.OnCommand(command)
	}
}
