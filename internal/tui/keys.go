package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	Select    key.Binding
	Extend    key.Binding
	Export    key.Binding
	Split     key.Binding
	Delete    key.Binding
	MoveEarly key.Binding
	MoveLate  key.Binding
	Reload    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev row")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select row")),
		Extend:    key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "extend selection")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Split:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split entry")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		MoveEarly: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move entry -15m")),
		MoveLate:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move entry +15m")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
