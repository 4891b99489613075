package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the metronome key bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	AccentUp key.Binding
	AccentDn key.Binding
	Settings key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "faster"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "slower"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "start/stop"),
	),
	AccentUp: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "accent +"),
	),
	AccentDn: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "accent -"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.AccentUp, k.AccentDn, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.AccentUp, k.AccentDn, k.Settings, k.Quit},
	}
}

// settingsKeyMap is the help shown while the settings view is open, where
// up and down adjust the accent interval.
type settingsKeyMap struct {
	keyMap
}

func (k settingsKeyMap) ShortHelp() []key.Binding {
	up := key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "accent +"))
	down := key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "accent -"))
	back := key.NewBinding(key.WithKeys("s", "esc"), key.WithHelp("s/esc", "back"))
	return []key.Binding{up, down, k.Toggle, back, k.Quit}
}

func (k settingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
