package model

import (
	"fmt"
	"strings"
)

// Todo is the domain model for a todo entry as the server stores it.
// ID 0 marks a client-side placeholder that has not been saved yet.
type Todo struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Draft is a todo the server has not assigned an id to.
type Draft struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// Placeholder returns the temp todo shown while the draft is being created.
func (d Draft) Placeholder() Todo {
	return Todo{ID: 0, UserID: d.UserID, Title: d.Title, Completed: d.Completed}
}

// FilterStatus selects which todos the view shows. It never reaches the server.
type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterActive    FilterStatus = "active"
	FilterCompleted FilterStatus = "completed"
)

// Filters lists every status in display order.
var Filters = []FilterStatus{FilterAll, FilterActive, FilterCompleted}

func ParseFilter(s string) (FilterStatus, error) {
	switch FilterStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// Match reports whether t is visible under f.
func (f FilterStatus) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the visible todos in their original order.
func (f FilterStatus) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Next cycles all -> active -> completed -> all.
func (f FilterStatus) Next() FilterStatus {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f FilterStatus) String() string { return string(f) }
