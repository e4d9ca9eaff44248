package flow

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// Toggle flips one todo's completed flag on the server, then locally.
// On failure the todo is left as it was.
func (c *Controller) Toggle(ctx context.Context, id int) error {
	todo, err := c.find(id)
	if err != nil {
		return err
	}
	c.markLoading(id)

	flipped := todo
	flipped.Completed = !todo.Completed
	if _, err := c.api.Update(ctx, flipped); err != nil {
		c.store.Update(func(s store.AppState) []store.Action {
			return []store.Action{store.SetIsInputFocused{Focused: true}, unmark(s, id)}
		})
		return c.fail(MsgUpdate, err)
	}

	c.store.Update(func(s store.AppState) []store.Action {
		return []store.Action{unmark(s, id), store.ToggleTodoStatus{ID: id}}
	})
	return nil
}

// ToggleAllTargets picks what toggle-all sends: every completed todo when
// all are completed, otherwise every incomplete one.
func ToggleAllTargets(todos []model.Todo) []model.Todo {
	all := len(todos) > 0
	for _, t := range todos {
		if !t.Completed {
			all = false
			break
		}
	}
	if all {
		return model.FilterCompleted.Apply(todos)
	}
	return model.FilterActive.Apply(todos)
}

// ToggleAll updates every target concurrently and merges the results in one
// dispatch. Failed items keep their old value; one banner covers all failures.
func (c *Controller) ToggleAll(ctx context.Context) error {
	targets := ToggleAllTargets(c.store.State().Todos)
	if len(targets) == 0 {
		return nil
	}

	ids := make([]int, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
	}
	c.store.Dispatch(store.SetLoadingItemIDs{IDs: ids})

	var (
		mu      sync.Mutex
		updated []model.Todo
		g       errgroup.Group
	)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			flipped := t
			flipped.Completed = !t.Completed
			got, err := c.api.Update(ctx, flipped)
			if err != nil {
				return err
			}
			if got.ID == 0 {
				got.ID = t.ID
			}
			mu.Lock()
			updated = append(updated, got)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	c.store.Update(func(s store.AppState) []store.Action {
		return []store.Action{
			store.SetTodos{Todos: store.ReplaceByID(s.Todos, updated)},
			store.SetLoadingItemIDs{IDs: []int{}},
		}
	})
	if err != nil {
		return c.fail(MsgUpdate, err)
	}
	c.log.Info().Int("count", len(updated)).Msg("toggled all")
	return nil
}
