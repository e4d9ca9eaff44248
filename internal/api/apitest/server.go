// Package apitest runs an in-memory todos service for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/idilsaglam/todo/internal/model"
)

// Request records one call the server received.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

// Server mimics GET/POST/PATCH/DELETE /todos.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	todos  []model.Todo
	nextID int
	reqs   []Request
	// FailPaths maps "METHOD /path" to a status code to answer with.
	failPaths map[string]int
}

func NewServer(t testing.TB, todos ...model.Todo) *Server {
	t.Helper()
	s := &Server{todos: slices.Clone(todos), nextID: 100, failPaths: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Fail makes requests for "METHOD /path" answer with status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPaths[method+" "+path] = status
}

func (s *Server) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.todos)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reqs)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Header: r.Header.Clone()}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
	}
	s.reqs = append(s.reqs, rec)

	if code, ok := s.failPaths[r.Method+" "+r.URL.Path]; ok {
		http.Error(w, "boom", code)
		return
	}

	switch {
	case r.URL.Path == "/todos" && r.Method == http.MethodGet:
		uid, _ := strconv.Atoi(r.URL.Query().Get("userId"))
		out := []model.Todo{}
		for _, t := range s.todos {
			if t.UserID == uid {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, out)

	case r.URL.Path == "/todos" && r.Method == http.MethodPost:
		t := model.Todo{
			ID:        s.nextID,
			Title:     str(rec.Body["title"]),
			Completed: rec.Body["completed"] == true,
			UserID:    num(rec.Body["userId"]),
		}
		s.nextID++
		s.todos = append(s.todos, t)
		writeJSON(w, http.StatusCreated, t)

	case strings.HasPrefix(r.URL.Path, "/todos/"):
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/todos/"))
		i := slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
		if err != nil || i < 0 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPatch:
			t := s.todos[i]
			if v, ok := rec.Body["title"]; ok {
				t.Title = str(v)
			}
			if v, ok := rec.Body["completed"]; ok {
				t.Completed = v == true
			}
			if v, ok := rec.Body["userId"]; ok {
				t.UserID = num(v)
			}
			s.todos[i] = t
			writeJSON(w, http.StatusOK, t)
		case http.MethodDelete:
			s.todos = slices.Delete(s.todos, i, i+1)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}
