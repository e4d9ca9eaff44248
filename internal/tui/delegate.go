package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
)

// todoItem adapts a Todo to bubbles/list.Item.
type todoItem struct {
	todo    model.Todo
	loading bool
	temp    bool // the creation placeholder
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return "" }
func (i todoItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders one todo per line. frame is the current spinner
// frame drawn in place of the checkbox while a request is pending.
type itemDelegate struct {
	frame string
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	if it.loading {
		box = pendingStyle.Render(d.frame)
	}
	if it.temp {
		text = mutedStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
