package table

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the table's key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Edit    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Suggest key.Binding
	Copy    key.Binding
	Rename  key.Binding
	Filter  key.Binding
	Reload  key.Binding
}

// DefaultKeyMap returns the default table bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev language")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next language")),
		Top:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first key")),
		Bottom:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last key")),
		Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add key")),
		Remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Suggest: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "suggest")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy key")),
		Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Add, k.Remove, k.Suggest, k.Copy, k.Rename, k.Filter}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Edit, k.Add, k.Remove, k.Rename, k.Suggest, k.Copy, k.Filter, k.Reload},
	}
}
