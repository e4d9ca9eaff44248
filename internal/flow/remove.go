package flow

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/todo/internal/store"
)

// Remove deletes one todo. The loading mark is cleared either way.
func (c *Controller) Remove(ctx context.Context, id int) error {
	if _, err := c.find(id); err != nil {
		return err
	}
	c.markLoading(id)

	if err := c.api.Remove(ctx, id); err != nil {
		c.unmarkLoading(id)
		return c.fail(MsgDelete, err)
	}

	c.store.Update(func(s store.AppState) []store.Action {
		return []store.Action{
			store.DeleteTodo{ID: id},
			store.SetIsInputFocused{Focused: true},
			unmark(s, id),
		}
	})
	c.log.Info().Int("id", id).Msg("deleted todo")
	return nil
}

// ClearCompleted deletes every completed todo concurrently. Items whose
// delete failed stay in the list.
func (c *Controller) ClearCompleted(ctx context.Context) error {
	st := c.store.State()
	var ids []int
	for _, t := range st.Todos {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	c.markLoading(ids...)

	var (
		mu      sync.Mutex
		removed []int
		g       errgroup.Group
	)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := c.api.Remove(ctx, id); err != nil {
				return err
			}
			mu.Lock()
			removed = append(removed, id)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	c.store.Update(func(s store.AppState) []store.Action {
		out := make([]store.Action, 0, len(removed)+2)
		for _, id := range removed {
			out = append(out, store.DeleteTodo{ID: id})
		}
		return append(out, unmark(s, ids...), store.SetIsInputFocused{Focused: true})
	})
	if err != nil {
		return c.fail(MsgDelete, err)
	}
	return nil
}
