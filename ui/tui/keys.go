package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keyboard bindings handled before keys reach the menu.
type KeyMap struct {
	Up,
	Down,
	ToggleMode,
	Quit,
	ForceQuit key.Binding
}

// DefaultKeyMap builds the bindings. quitKeys are the menu's quit keys, shown
// in the help line; the menu itself decides whether a key quits.
func DefaultKeyMap(quitKeys []string) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "page/step"),
		),
		Quit: key.NewBinding(
			key.WithKeys(quitKeys...),
			key.WithHelp(strings.Join(quitKeys, "/"), "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ToggleMode, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.ForceQuit}}
}
