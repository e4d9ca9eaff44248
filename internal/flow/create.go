package flow

import (
	"context"
	"strings"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// Header is the new-todo form: the typed title and whether a create is in flight.
type Header struct {
	Title     string
	Submitted bool
}

// Submit runs the whole creation flow for the typed title.
func (h *Header) Submit(ctx context.Context, c *Controller) (model.Todo, error) {
	d, err := c.BeginCreate(h.Title)
	if err != nil {
		h.Submitted = false
		return model.Todo{}, err
	}
	h.Submitted = true
	defer func() { h.Submitted = false }()

	todo, err := c.FinishCreate(ctx, d)
	if err != nil {
		return model.Todo{}, err
	}
	h.Title = ""
	return todo, nil
}

// BeginCreate validates title and stages the placeholder with id 0 as loading.
// A blank title shows a banner and nothing is staged.
func (c *Controller) BeginCreate(title string) (model.Draft, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Draft{}, c.fail(MsgEmptyTitle, ErrEmptyTitle)
	}
	d := model.Draft{Title: title, Completed: false, UserID: c.userID}
	tmp := d.Placeholder()
	c.store.Dispatch(
		store.SetLoadingItemIDs{IDs: []int{tmp.ID}},
		store.SetTempTodo{Todo: &tmp},
	)
	return d, nil
}

// FinishCreate sends d. The placeholder, loading set and focus are reset
// whatever the outcome.
func (c *Controller) FinishCreate(ctx context.Context, d model.Draft) (model.Todo, error) {
	todo, err := c.api.Create(ctx, d)

	cleanup := []store.Action{
		store.SetTempTodo{Todo: nil},
		store.SetIsInputFocused{Focused: true},
		store.SetLoadingItemIDs{IDs: []int{}},
	}
	if err != nil {
		return model.Todo{}, c.fail(MsgAdd, err, cleanup...)
	}

	c.store.Update(func(s store.AppState) []store.Action {
		return append([]store.Action{store.SetTodos{Todos: append(s.Todos, todo)}}, cleanup...)
	})
	c.log.Info().Int("id", todo.ID).Msg("created todo")
	return todo, nil
}

// Create is BeginCreate followed by FinishCreate.
func (c *Controller) Create(ctx context.Context, title string) (model.Todo, error) {
	h := Header{Title: title}
	return h.Submit(ctx, c)
}
