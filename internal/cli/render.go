package cli

import (
	"fmt"

	"github.com/idilsaglam/todo/internal/flow"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
)

var editResult = map[flow.EditPlan]string{
	flow.EditNoop:   "unchanged",
	flow.EditDelete: "removed",
	flow.EditRename: "updated",
}

func listLines(st store.AppState, group bool, c ui.Colorer) []string {
	t := ui.Current()
	done, pending := st.CompletedCount(), st.ActiveCount()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		c.C(t.Title, "Todos"),
		c.C(t.Success, "✔"), done,
		c.C(t.Pending, "•"), pending,
		c.C(t.Accent, "Total"), len(st.Todos),
	)

	lines := []string{header, c.C(t.Muted, ui.ProgressBar(done, done+pending, 28)), ""}

	// Indexes stay those of the full list so `done <index>` works under any filter.
	index := make(map[int]int, len(st.Todos))
	for i, td := range st.Todos {
		index[td.ID] = i + 1
	}
	visible := st.Visible()
	if group {
		lines = append(lines, groupLines(visible, index, c)...)
	} else {
		lines = append(lines, flatLines(visible, index, c)...)
	}
	lines = append(lines, "")
	if st.Filter != model.FilterAll {
		lines = append(lines, c.C(t.Muted, "Filter: "+st.Filter.String()))
	}
	lines = append(lines, c.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(todos []model.Todo, index map[int]int, c ui.Colorer) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{c.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		idx := fmt.Sprintf("%2d.", index[td.ID])
		box, color := t.BoxUnchecked, t.Muted
		title := td.Title
		if len([]rune(title)) > 80 {
			title = string([]rune(title)[:77]) + "..."
		}
		if td.Completed {
			box, color = t.BoxChecked, t.Success
			title = c.C(ui.Strike(), title)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			c.C(ui.Dim(), idx), c.C(color, box), title, c.C(t.Muted, fmt.Sprintf("#%d", td.ID))))
	}
	return out
}

func groupLines(todos []model.Todo, index map[int]int, c ui.Colorer) []string {
	t := ui.Current()
	pend := model.FilterActive.Apply(todos)
	done := model.FilterCompleted.Apply(todos)

	section := func(name string, items []model.Todo) []string {
		lines := []string{c.C(t.Accent, name)}
		if len(items) == 0 {
			return append(lines, c.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(items, index, c)...)
	}

	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
