package tui

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/todo/internal/model"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n")
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if msg := m.state.ErrorMessage; msg != "" {
		b.WriteString(bannerStyle.Render(errorStyle.Render("✖ " + msg)))
		b.WriteString("\n")
	}

	listHeight := m.height - 10
	if m.focus == focusEdit {
		listHeight -= 3
	}
	m.list.SetSize(max(m.width-4, 20), max(listHeight, 3))
	if len(m.list.Items()) == 0 {
		b.WriteString(mutedStyle.Render("  no items"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.focus == focusEdit {
		b.WriteString(barStyle.Render("Edit item\n" + m.edit.View()))
		b.WriteString("\n")
	}
	if len(m.state.Todos) > 0 {
		b.WriteString(m.footerView())
	}
	return panelStyle.Render(b.String())
}

func (m Model) headerView() string {
	toggle := mutedStyle.Render("❯❯")
	if m.state.AllCompleted() {
		toggle = successStyle.Render("❯❯")
	}
	if len(m.state.Todos) == 0 {
		toggle = "  "
	}
	field := m.input.View()
	if m.header.Submitted {
		field = mutedStyle.Render(field)
	}
	return toggle + " " + field
}

func (m Model) footerView() string {
	left := fmt.Sprintf("%d items left", m.state.ActiveCount())

	filters := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		name := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if f == m.state.Filter {
			filters = append(filters, accentStyle.Underline(true).Render(name))
		} else {
			filters = append(filters, mutedStyle.Render(name))
		}
	}

	parts := []string{left, strings.Join(filters, " ")}
	if m.state.HasCompleted() {
		parts = append(parts, mutedStyle.Render("c: clear completed"))
	}
	return strings.Join(parts, "   ")
}
