// Package store holds the in-memory todo state and the reducer that changes it.
package store

import (
	"slices"

	"github.com/idilsaglam/todo/internal/model"
)

// AppState is everything the views render. It is only changed through Reduce.
type AppState struct {
	Todos          []model.Todo
	Filter         model.FilterStatus
	ErrorMessage   string
	IsInputFocused bool
	// TempTodo is the creation placeholder, kept beside Todos rather than in it.
	TempTodo *model.Todo
	// LoadingItemIDs holds ids awaiting a request; 0 stands for TempTodo.
	LoadingItemIDs []int
}

// Initial is the empty state the app starts from.
func Initial(filter model.FilterStatus) AppState {
	if filter == "" {
		filter = model.FilterAll
	}
	return AppState{Todos: []model.Todo{}, Filter: filter, LoadingItemIDs: []int{}}
}

// Clone returns a deep copy.
func (s AppState) Clone() AppState {
	s.Todos = cloneTodos(s.Todos)
	s.LoadingItemIDs = cloneIDs(s.LoadingItemIDs)
	if s.TempTodo != nil {
		t := *s.TempTodo
		s.TempTodo = &t
	}
	return s
}

func (s AppState) Visible() []model.Todo { return s.Filter.Apply(s.Todos) }

func (s AppState) ActiveCount() int {
	n := 0
	for _, t := range s.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (s AppState) CompletedCount() int { return len(s.Todos) - s.ActiveCount() }

func (s AppState) HasCompleted() bool { return s.CompletedCount() > 0 }

// AllCompleted is true for a non-empty list with nothing left to do.
func (s AppState) AllCompleted() bool { return len(s.Todos) > 0 && s.ActiveCount() == 0 }

func (s AppState) IsLoading(id int) bool { return slices.Contains(s.LoadingItemIDs, id) }

// Find returns the todo with id.
func (s AppState) Find(id int) (model.Todo, bool) {
	i := slices.IndexFunc(s.Todos, func(t model.Todo) bool { return t.ID == id })
	if i < 0 {
		return model.Todo{}, false
	}
	return s.Todos[i], true
}

// WithLoading returns the loading set plus id.
func (s AppState) WithLoading(ids ...int) []int {
	out := cloneIDs(s.LoadingItemIDs)
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// WithoutLoading returns the loading set minus ids.
func (s AppState) WithoutLoading(ids ...int) []int {
	out := make([]int, 0, len(s.LoadingItemIDs))
	for _, id := range s.LoadingItemIDs {
		if !slices.Contains(ids, id) {
			out = append(out, id)
		}
	}
	return out
}

func cloneTodos(in []model.Todo) []model.Todo {
	out := make([]model.Todo, len(in))
	copy(out, in)
	return out
}

func cloneIDs(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
