// Package flow runs the user-facing operations against the todos API and
// keeps the store consistent whether each request succeeds or fails.
package flow

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// Banner texts shown to the user.
const (
	MsgLoad       = "Unable to load todos"
	MsgEmptyTitle = "Title should not be empty"
	MsgAdd        = "Unable to add a todo"
	MsgUpdate     = "Unable to update a todo"
	MsgDelete     = "Unable to delete a todo"
)

// ErrEmptyTitle is returned when a title is blank after trimming.
var ErrEmptyTitle = errors.New("empty title")

// ErrNotFound is returned for an id that is not in the list.
var ErrNotFound = errors.New("todo not found")

// Error carries the banner shown for a failed flow and its cause.
type Error struct {
	Banner string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Banner
	}
	return e.Banner + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// API is the subset of the REST client the flows need.
type API interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, d model.Draft) (model.Todo, error)
	Update(ctx context.Context, t model.Todo) (model.Todo, error)
	Remove(ctx context.Context, id int) error
}

// Controller wires the API to the store.
type Controller struct {
	api    API
	store  *store.Store
	userID int
	log    zerolog.Logger
}

func NewController(api API, st *store.Store, userID int, log zerolog.Logger) *Controller {
	return &Controller{api: api, store: st, userID: userID, log: log}
}

func (c *Controller) Store() *store.Store { return c.store }

// Load replaces the list with what the server has.
func (c *Controller) Load(ctx context.Context) error {
	todos, err := c.api.List(ctx)
	if err != nil {
		return c.fail(MsgLoad, err)
	}
	c.log.Info().Int("count", len(todos)).Msg("loaded todos")
	c.store.Dispatch(store.SetTodos{Todos: todos})
	return nil
}

// SetFilter changes the view filter.
func (c *Controller) SetFilter(f model.FilterStatus) {
	c.store.Dispatch(store.SetFilter{Filter: f})
}

// DismissError clears the banner if it still shows msg.
func (c *Controller) DismissError(msg string) {
	c.store.Update(func(s store.AppState) []store.Action {
		if s.ErrorMessage != msg || msg == "" {
			return nil
		}
		return []store.Action{store.SetErrorMessage{Message: ""}}
	})
}

// fail shows banner and returns it as an *Error.
func (c *Controller) fail(banner string, err error, extra ...store.Action) error {
	if err != nil && !errors.Is(err, ErrEmptyTitle) {
		c.log.Warn().Err(err).Str("banner", banner).Msg("flow failed")
	}
	c.store.Dispatch(append([]store.Action{store.SetErrorMessage{Message: banner}}, extra...)...)
	return &Error{Banner: banner, Err: err}
}

func (c *Controller) markLoading(ids ...int) {
	c.store.Update(func(s store.AppState) []store.Action {
		return []store.Action{store.SetLoadingItemIDs{IDs: s.WithLoading(ids...)}}
	})
}

func unmark(s store.AppState, ids ...int) store.Action {
	return store.SetLoadingItemIDs{IDs: s.WithoutLoading(ids...)}
}

func (c *Controller) unmarkLoading(ids ...int) {
	c.store.Update(func(s store.AppState) []store.Action {
		return []store.Action{unmark(s, ids...)}
	})
}

func (c *Controller) find(id int) (model.Todo, error) {
	t, ok := c.store.State().Find(id)
	if !ok {
		return model.Todo{}, ErrNotFound
	}
	return t, nil
}
