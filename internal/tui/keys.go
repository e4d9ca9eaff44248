package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle         key.Binding
	ToggleAll      key.Binding
	Edit           key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	Filter         key.Binding
	FocusInput     key.Binding
	FocusList      key.Binding
	Submit         key.Binding
	Cancel         key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ToggleAll:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle all")),
		Edit:           key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearCompleted: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		Filter:         key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		FocusInput:     key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "add")),
		FocusList:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "list")),
		Submit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:           key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// listHelp is shown by the list's help line.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll, k.Edit, k.Delete, k.ClearCompleted, k.Filter, k.FocusInput}
}
