package flow

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

var errBoom = errors.New("boom")

type call struct {
	Op   string
	ID   int
	Todo model.Todo
}

// fakeAPI answers from memory; fail lists ids (or 0 for create/list) that error.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []call
	fail   map[int]bool
	nextID int
	// seen lets tests inspect the store while a request is in flight.
	seen func()
}

func newFake() *fakeAPI { return &fakeAPI{fail: map[int]bool{}, nextID: 100} }

func (f *fakeAPI) record(c call) bool {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	failed := f.fail[c.ID]
	seen := f.seen
	f.mu.Unlock()
	if seen != nil {
		seen()
	}
	return failed
}

func (f *fakeAPI) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.calls)
	slices.SortFunc(out, func(a, b call) int { return a.ID - b.ID })
	return out
}

func (f *fakeAPI) List(context.Context) ([]model.Todo, error) {
	if f.record(call{Op: "list"}) {
		return nil, errBoom
	}
	return []model.Todo{{ID: 1, UserID: 6, Title: "server"}}, nil
}

func (f *fakeAPI) Create(_ context.Context, d model.Draft) (model.Todo, error) {
	if f.record(call{Op: "create", Todo: d.Placeholder()}) {
		return model.Todo{}, errBoom
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := d.Placeholder()
	t.ID = f.nextID
	f.nextID++
	return t, nil
}

func (f *fakeAPI) Update(_ context.Context, t model.Todo) (model.Todo, error) {
	if f.record(call{Op: "update", ID: t.ID, Todo: t}) {
		return model.Todo{}, errBoom
	}
	return t, nil
}

func (f *fakeAPI) Remove(_ context.Context, id int) error {
	if f.record(call{Op: "remove", ID: id}) {
		return errBoom
	}
	return nil
}

func newController(api *fakeAPI, todos ...model.Todo) *Controller {
	st := store.Initial(model.FilterAll)
	st.Todos = todos
	return NewController(api, store.New(st), 6, zerolog.Nop())
}
