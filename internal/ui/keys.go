package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Up         key.Binding
	Down       key.Binding
	Today      key.Binding
	Weekly     key.Binding
	Monthly    key.Binding
	Toggle     key.Binding
	EditNote   key.Binding
	ClearNote  key.Binding
	Background key.Binding
	Focus      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Next:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Weekly:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weekly")),
		Monthly:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "monthly")),
		Toggle:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle view")),
		EditNote:   key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "edit note")),
		ClearNote:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear note")),
		Background: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next widget")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.EditNote, k.Background, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down, k.Today},
		{k.Weekly, k.Monthly, k.Toggle},
		{k.EditNote, k.ClearNote, k.Background},
		{k.Focus, k.Help, k.Quit},
	}
}
