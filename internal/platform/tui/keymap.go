package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickburst/internal/breakout"
)

// keyStep is how far one arrow key press moves the paddle, in canvas units.
const keyStep = 4 * CellWidth

// Action is a shell-level input derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionConfirm // start, or next level after a clear
	ActionPause
	ActionRestart // back to menu after game over
	ActionQuit
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Confirm, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Confirm, k.Pause, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/next"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to an action.
func (k KeyMap) Action(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Left):
		return ActionLeft
	case key.Matches(msg, k.Right):
		return ActionRight
	case key.Matches(msg, k.Confirm):
		return ActionConfirm
	case key.Matches(msg, k.Pause):
		return ActionPause
	case key.Matches(msg, k.Restart):
		return ActionRestart
	}
	return ActionNone
}

// Intents maps an action to simulation intents. The simulation drops the
// ones the current status does not accept, so confirm can submit both start
// and advance.
func Intents(a Action, w breakout.World) []breakout.Intent {
	center := w.Paddle.Pos.X + w.Paddle.Width/2

	switch a {
	case ActionLeft:
		return []breakout.Intent{breakout.MoveTo(center - keyStep)}
	case ActionRight:
		return []breakout.Intent{breakout.MoveTo(center + keyStep)}
	case ActionConfirm:
		return []breakout.Intent{
			{Kind: breakout.IntentStart},
			{Kind: breakout.IntentAdvanceLevel},
		}
	case ActionPause:
		return []breakout.Intent{{Kind: breakout.IntentTogglePause}}
	case ActionRestart:
		return []breakout.Intent{{Kind: breakout.IntentRestartToMenu}}
	}
	return nil
}
