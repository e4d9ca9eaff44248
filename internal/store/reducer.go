package store

import "github.com/idilsaglam/todo/internal/model"

// Reduce computes the next state. It never mutates s or the action payload;
// fields other than the one the action names pass through unchanged.
func Reduce(s AppState, a Action) AppState {
	switch a := a.(type) {
	case SetTodos:
		s.Todos = cloneTodos(a.Todos)

	case SetFilter:
		s.Filter = a.Filter

	case SetErrorMessage:
		s.ErrorMessage = a.Message

	case DeleteTodo:
		out := make([]model.Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if t.ID != a.ID {
				out = append(out, t)
			}
		}
		s.Todos = out

	case SetIsInputFocused:
		s.IsInputFocused = a.Focused

	case SetTempTodo:
		if a.Todo == nil {
			s.TempTodo = nil
		} else {
			t := *a.Todo
			s.TempTodo = &t
		}

	case SetLoadingItemIDs:
		s.LoadingItemIDs = cloneIDs(a.IDs)

	case ToggleTodoStatus:
		out := cloneTodos(s.Todos)
		for i := range out {
			if out[i].ID == a.ID {
				out[i].Completed = !out[i].Completed
			}
		}
		s.Todos = out
	}
	return s
}

// ReplaceByID returns todos with every entry whose id matches one in
// updates swapped for the update. Order follows todos.
func ReplaceByID(todos []model.Todo, updates []model.Todo) []model.Todo {
	byID := make(map[int]model.Todo, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		if u, ok := byID[t.ID]; ok {
			out[i] = u
		} else {
			out[i] = t
		}
	}
	return out
}
