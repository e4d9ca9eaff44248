package tui

import (
	"context"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/api"
	"github.com/idilsaglam/todo/internal/api/apitest"
	"github.com/idilsaglam/todo/internal/flow"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

func newModel(t *testing.T, todos ...model.Todo) (Model, *apitest.Server, *flow.Controller) {
	t.Helper()
	return newModelWith(t, Options{}, todos...)
}

func newModelWith(t *testing.T, opt Options, todos ...model.Todo) (Model, *apitest.Server, *flow.Controller) {
	t.Helper()
	srv := apitest.NewServer(t, todos...)
	st := store.Initial(model.FilterAll)
	st.Todos = todos
	ctrl := flow.NewController(api.New(srv.URL, 6), store.New(st), 6, zerolog.Nop())
	return New(context.Background(), ctrl, opt), srv, ctrl
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestSubmitNewTodo(t *testing.T) {
	m, srv, ctrl := newModel(t)

	m, _ = send(t, m, keyRunes("  Buy milk  "))
	m, cmd := send(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.header.Submitted, "field disabled while submitting")

	st := ctrl.Store().State()
	require.NotNil(t, st.TempTodo)
	assert.Equal(t, "Buy milk", st.TempTodo.Title)
	assert.Equal(t, []int{0}, st.LoadingItemIDs)

	// Typing is ignored while the create is in flight.
	m, _ = send(t, m, keyRunes("x"))
	assert.Equal(t, "  Buy milk  ", m.input.Value())

	m, _ = send(t, m, cmd())
	assert.False(t, m.header.Submitted)
	assert.Empty(t, m.input.Value())

	st = ctrl.Store().State()
	assert.Equal(t, []model.Todo{{ID: 100, UserID: 6, Title: "Buy milk"}}, st.Todos)
	assert.Nil(t, st.TempTodo)
	assert.Len(t, srv.Todos(), 1)
}

func TestSubmitEmptyTitleShowsBanner(t *testing.T) {
	m, srv, ctrl := newModel(t)

	m, _ = send(t, m, keyRunes("   "))
	_, cmd := send(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, flow.MsgEmptyTitle, ctrl.Store().State().ErrorMessage)
	assert.Empty(t, srv.Requests())
}

func TestSubmitFailureKeepsTitle(t *testing.T) {
	m, srv, ctrl := newModel(t)
	srv.Fail(http.MethodPost, "/todos", http.StatusInternalServerError)

	m, _ = send(t, m, keyRunes("Buy milk"))
	m, cmd := send(t, m, keyEnter)
	m, _ = send(t, m, cmd())

	assert.Equal(t, "Buy milk", m.input.Value())
	st := ctrl.Store().State()
	assert.Equal(t, flow.MsgAdd, st.ErrorMessage)
	assert.Empty(t, st.Todos)
	assert.Nil(t, st.TempTodo)
}

func TestEscClearsNewTodoField(t *testing.T) {
	m, _, _ := newModel(t)
	m, _ = send(t, m, keyRunes("draft"))
	m, _ = send(t, m, keyEsc)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, focusInput, m.focus)
}

func TestToggleSelected(t *testing.T) {
	m, srv, ctrl := newModel(t, model.Todo{ID: 1, UserID: 6, Title: "a"})

	m, _ = send(t, m, keyTab)
	require.Equal(t, focusList, m.focus)

	_, cmd := send(t, m, keySpace)
	require.NotNil(t, cmd)
	done, ok := cmd().(flowDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	assert.True(t, ctrl.Store().State().Todos[0].Completed)
	assert.True(t, srv.Todos()[0].Completed)
}

func TestToggleAllKey(t *testing.T) {
	m, srv, _ := newModel(t,
		model.Todo{ID: 1, UserID: 6, Completed: true},
		model.Todo{ID: 2, UserID: 6},
	)
	m, _ = send(t, m, keyTab)
	_, cmd := send(t, m, keyRunes("t"))
	require.NotNil(t, cmd)
	cmd()

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/todos/2", reqs[0].Path)
}

func TestEditEscapeRevertsWithoutRequest(t *testing.T) {
	m, srv, _ := newModel(t, model.Todo{ID: 1, UserID: 6, Title: "Buy milk"})

	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("e"))
	require.Equal(t, focusEdit, m.focus)
	assert.Equal(t, "Buy milk", m.edit.Value())

	m, _ = send(t, m, keyRunes(" and eggs"))
	assert.Equal(t, "Buy milk and eggs", m.editor.Buffer())

	m, _ = send(t, m, keyEsc)
	assert.Equal(t, focusList, m.focus)
	assert.False(t, m.editor.Editing())
	assert.Equal(t, "Buy milk", m.editor.Buffer())
	assert.Empty(t, srv.Requests())
}

func TestEditUnchangedSubmitSendsNothing(t *testing.T) {
	m, srv, _ := newModel(t, model.Todo{ID: 1, UserID: 6, Title: "Buy milk"})

	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("e"))
	m, cmd := send(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, focusList, m.focus)
	assert.Empty(t, srv.Requests())
}

func TestEditRename(t *testing.T) {
	m, srv, ctrl := newModel(t, model.Todo{ID: 1, UserID: 6, Title: "Buy milk"})

	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("e"))
	m, _ = send(t, m, keyRunes("!"))
	m, cmd := send(t, m, keyEnter)
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, "Buy milk!", ctrl.Store().State().Todos[0].Title)
	assert.Equal(t, "Buy milk!", srv.Todos()[0].Title)
}

func TestEditClearedTitleDeletes(t *testing.T) {
	m, srv, ctrl := newModel(t, model.Todo{ID: 1, UserID: 6, Title: "ab"})

	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("e"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, cmd := send(t, m, keyEnter)
	require.NotNil(t, cmd)
	_, _ = send(t, m, cmd())

	assert.Empty(t, ctrl.Store().State().Todos)
	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
}

func TestFilterKeyCycles(t *testing.T) {
	m, _, ctrl := newModel(t, model.Todo{ID: 1, Completed: true}, model.Todo{ID: 2})
	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("f"))
	assert.Equal(t, model.FilterActive, ctrl.Store().State().Filter)

	m, _ = send(t, m, stateChangedMsg{})
	assert.Len(t, m.list.Items(), 1)
}

func TestInputFocusRequestMovesFocus(t *testing.T) {
	m, _, ctrl := newModel(t, model.Todo{ID: 1})
	m, _ = send(t, m, keyTab)
	require.Equal(t, focusList, m.focus)

	ctrl.Store().Dispatch(store.SetIsInputFocused{Focused: true})
	m, _ = send(t, m, stateChangedMsg{})

	assert.Equal(t, focusInput, m.focus)
	assert.False(t, ctrl.Store().State().IsInputFocused, "request is consumed")
}

func TestDismissError(t *testing.T) {
	m, _, ctrl := newModel(t)
	ctrl.Store().Dispatch(store.SetErrorMessage{Message: flow.MsgDelete})

	_, _ = send(t, m, dismissErrorMsg{message: flow.MsgAdd})
	assert.Equal(t, flow.MsgDelete, ctrl.Store().State().ErrorMessage, "newer banner survives")

	_, _ = send(t, m, dismissErrorMsg{message: flow.MsgDelete})
	assert.Empty(t, ctrl.Store().State().ErrorMessage)
}

func TestBannerClearsAfterTimeout(t *testing.T) {
	m, srv, ctrl := newModelWith(t, Options{ErrorTimeout: 10 * time.Millisecond}, model.Todo{ID: 1, UserID: 6, Title: "Write report"})
	srv.Fail(http.MethodPatch, "/todos/1", http.StatusInternalServerError)
	m, _ = send(t, m, keyTab)

	m, cmd := send(t, m, keySpace)
	m, tick := send(t, m, cmd())
	require.NotNil(t, tick, "failure schedules a dismissal")
	assert.Equal(t, flow.MsgUpdate, ctrl.Store().State().ErrorMessage)

	m, _ = send(t, m, tick())
	assert.Empty(t, ctrl.Store().State().ErrorMessage)
}

func TestRepeatedFailureRestartsBannerTimer(t *testing.T) {
	m, srv, ctrl := newModelWith(t, Options{ErrorTimeout: 10 * time.Millisecond}, model.Todo{ID: 1, UserID: 6, Title: "Write report"})
	srv.Fail(http.MethodPatch, "/todos/1", http.StatusInternalServerError)
	m, _ = send(t, m, keyTab)

	m, cmd := send(t, m, keySpace)
	m, first := send(t, m, cmd())
	m, cmd = send(t, m, keySpace)
	m, second := send(t, m, cmd())
	require.NotNil(t, first)
	require.NotNil(t, second, "identical banner schedules its own dismissal")

	m, _ = send(t, m, first())
	assert.Equal(t, flow.MsgUpdate, ctrl.Store().State().ErrorMessage, "stale timer leaves the newer banner")

	_, _ = send(t, m, second())
	assert.Empty(t, ctrl.Store().State().ErrorMessage)
}

func TestViewShowsStateAndBanner(t *testing.T) {
	m, _, ctrl := newModel(t,
		model.Todo{ID: 1, Title: "Write report"},
		model.Todo{ID: 2, Title: "Walk dog", Completed: true},
	)
	ctrl.Store().Dispatch(store.SetErrorMessage{Message: flow.MsgUpdate})
	m, _ = send(t, m, stateChangedMsg{})

	out := m.View()
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "1 items left")
	assert.Contains(t, out, flow.MsgUpdate)
	assert.Contains(t, out, "clear completed")
}
