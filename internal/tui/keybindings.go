package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global and file pane bindings.
type KeyMap struct {
	Quit    key.Binding
	Focus   key.Binding
	Help    key.Binding
	Dismiss key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Rescan  key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss toast")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open file")),
		Rescan:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "rescan files")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Help, k.Dismiss, k.Quit},
		{k.Up, k.Down, k.Open, k.Rescan},
	}
}
