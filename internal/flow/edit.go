package flow

import (
	"context"
	"strings"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// EditPlan is what submitting an inline edit will do.
type EditPlan int

const (
	EditNoop   EditPlan = iota // title unchanged, just leave edit mode
	EditDelete                 // title cleared, delete the todo
	EditRename                 // send the new title
)

// Editor is the inline edit state of one row.
type Editor struct {
	todo    model.Todo
	buffer  string
	editing bool
}

// Begin enters edit mode on t with the buffer holding its title.
func (e *Editor) Begin(t model.Todo) {
	e.todo = t
	e.buffer = t.Title
	e.editing = true
}

func (e *Editor) SetBuffer(s string) { e.buffer = s }

func (e *Editor) Buffer() string { return e.buffer }

func (e *Editor) Editing() bool { return e.editing }

func (e *Editor) Todo() model.Todo { return e.todo }

// Cancel reverts the buffer and leaves edit mode. Nothing is sent.
func (e *Editor) Cancel() {
	e.buffer = e.todo.Title
	e.editing = false
}

// Done leaves edit mode keeping the buffer.
func (e *Editor) Done() { e.editing = false }

// Plan decides what a submit does. The second value is the trimmed title.
func (e *Editor) Plan() (EditPlan, string) {
	title := strings.TrimSpace(e.buffer)
	switch {
	case title == e.todo.Title:
		return EditNoop, title
	case title == "":
		return EditDelete, ""
	default:
		return EditRename, title
	}
}

// SubmitEdit runs the plan. Edit mode ends on success or a no-op and is
// kept on failure so the user can retry.
func (c *Controller) SubmitEdit(ctx context.Context, e *Editor) error {
	plan, title := e.Plan()
	var err error
	switch plan {
	case EditNoop:
	case EditDelete:
		err = c.Remove(ctx, e.todo.ID)
	case EditRename:
		_, err = c.Rename(ctx, e.todo.ID, title)
	}
	if err != nil {
		return err
	}
	e.Done()
	return nil
}

// Rename sends a new title for id and merges the server's todo into the list.
func (c *Controller) Rename(ctx context.Context, id int, title string) (model.Todo, error) {
	todo, err := c.find(id)
	if err != nil {
		return model.Todo{}, err
	}
	c.markLoading(id)

	todo.Title = title
	updated, err := c.api.Update(ctx, todo)
	if err != nil {
		c.unmarkLoading(id)
		return model.Todo{}, c.fail(MsgUpdate, err)
	}
	if updated.ID == 0 {
		updated.ID = id
	}

	c.store.Update(func(s store.AppState) []store.Action {
		return []store.Action{
			store.SetTodos{Todos: store.ReplaceByID(s.Todos, []model.Todo{updated})},
			unmark(s, id),
		}
	})
	return updated, nil
}
