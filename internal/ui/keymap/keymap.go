package keymap

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Command is an operator action, independent of the surface it came from.
type Command int

const (
	CommandNone Command = iota
	CommandNext
	CommandPrevious
	CommandTogglePause
	CommandAddStep
	CommandRemoveStep
	CommandEnd
	CommandReposition
	CommandOpenMonitor
	CommandCloseMonitor
)

func (command Command) String() string {
	switch command {
	case CommandNone:
		return "none"
	case CommandNext:
		return "next"
	case CommandPrevious:
		return "previous"
	case CommandTogglePause:
		return "toggle_pause"
	case CommandAddStep:
		return "add_step"
	case CommandRemoveStep:
		return "remove_step"
	case CommandEnd:
		return "end"
	case CommandReposition:
		return "reposition"
	case CommandOpenMonitor:
		return "open_monitor"
	case CommandCloseMonitor:
		return "close_monitor"
	default:
		return fmt.Sprintf("command(%d)", int(command))
	}
}

// Bindings maps keys to commands.
type Bindings map[fyne.KeyName]Command

// Global returns the keys every window understands.
func Global() Bindings {
	return Bindings{
		fyne.KeyN: CommandNext,
		fyne.KeyB: CommandPrevious,
		fyne.KeyP: CommandTogglePause,
		fyne.KeyM: CommandAddStep,
		fyne.KeyR: CommandRemoveStep,
		fyne.KeyE: CommandEnd,
		fyne.KeyW: CommandReposition,
	}
}

// Monitor returns the global keys plus Q to close the confidence monitor.
func Monitor() Bindings {
	bindings := Global()
	bindings[fyne.KeyQ] = CommandCloseMonitor
	return bindings
}

// Lookup returns the command bound to key.
func (bindings Bindings) Lookup(key fyne.KeyName) (Command, bool) {
	command, ok := bindings[key]
	return command, ok
}

// Handler returns a typed-key callback that dispatches bound commands.
func (bindings Bindings) Handler(dispatch func(Command)) func(*fyne.KeyEvent) {
	return func(event *fyne.KeyEvent) {
		if event == nil || dispatch == nil {
			return
		}
		if command, ok := bindings.Lookup(event.Name); ok {
			dispatch(command)
		}
	}
}

// Bind installs the bindings on the window canvas.
func Bind(window fyne.Window, bindings Bindings, dispatch func(Command)) {
	window.Canvas().SetOnTypedKey(bindings.Handler(dispatch))
}
