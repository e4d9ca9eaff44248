package store

import "github.com/idilsaglam/todo/internal/model"

// Action is a mutation message handed to Reduce. Each kind names the one
// AppState field it replaces.
type Action interface {
	Kind() string
	action()
}

type SetTodos struct{ Todos []model.Todo }

type SetFilter struct{ Filter model.FilterStatus }

type SetErrorMessage struct{ Message string }

// DeleteTodo drops the todo with ID. Unknown ids leave the list as is.
type DeleteTodo struct{ ID int }

type SetIsInputFocused struct{ Focused bool }

// SetTempTodo stages the creation placeholder; nil clears it.
type SetTempTodo struct{ Todo *model.Todo }

// SetLoadingItemIDs replaces the loading set wholesale.
type SetLoadingItemIDs struct{ IDs []int }

type ToggleTodoStatus struct{ ID int }

func (SetTodos) Kind() string          { return "setTodos" }
func (SetFilter) Kind() string         { return "setFilter" }
func (SetErrorMessage) Kind() string   { return "setErrorMessage" }
func (DeleteTodo) Kind() string        { return "deleteTodo" }
func (SetIsInputFocused) Kind() string { return "setInputFocus" }
func (SetTempTodo) Kind() string       { return "setTempTodo" }
func (SetLoadingItemIDs) Kind() string { return "setLoadingItemIds" }
func (ToggleTodoStatus) Kind() string  { return "toggleTodoStatus" }

func (SetTodos) action()          {}
func (SetFilter) action()         {}
func (SetErrorMessage) action()   {}
func (DeleteTodo) action()        {}
func (SetIsInputFocused) action() {}
func (SetTempTodo) action()       {}
func (SetLoadingItemIDs) action() {}
func (ToggleTodoStatus) action()  {}
