package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the board.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Task management
	New     key.Binding
	Edit    key.Binding
	Advance key.Binding // Start or complete, whichever the status allows
	Delete  key.Binding

	// View
	Filter  key.Binding
	Sort    key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Help    key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Submit    key.Binding

	// General
	Quit    key.Binding
	Escape  key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Advance: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "start/complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "/"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		Reset: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filter/sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next option"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.New, k.Edit, k.Advance, k.Delete, k.Filter, k.Sort, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.New, k.Edit, k.Advance, k.Delete},
		{k.Filter, k.Sort, k.Reset, k.Refresh},
		{k.Help, k.Quit},
	}
}

// formKeys is the help shown while a form is open.
type formKeys struct{ k KeyMap }

func (f formKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.k.NextField, f.k.Left, f.k.Right, f.k.Submit, f.k.Escape}
}

func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}
