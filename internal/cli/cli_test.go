package cli_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/api/apitest"
	"github.com/idilsaglam/todo/internal/cli"
	"github.com/idilsaglam/todo/internal/model"
)

type result struct {
	out, err string
	code     int
}

type harness struct {
	t    *testing.T
	home string
	srv  *apitest.Server
}

func newHarness(t *testing.T, todos ...model.Todo) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TADA_TOKEN", "")
	return &harness{t: t, home: home, srv: apitest.NewServer(t, todos...)}
}

func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	app := cli.NewApp()
	cmd := app.RootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--api-url", h.srv.URL, "--user-id", "6", "--no-color"))
	err := cmd.ExecuteContext(context.Background())
	require.NoError(h.t, app.Close())
	return result{out: out.String(), err: errb.String(), code: cli.ExitCode(err)}
}

func seed() []model.Todo {
	return []model.Todo{
		{ID: 1, UserID: 6, Title: "Buy milk"},
		{ID: 2, UserID: 6, Title: "Walk dog", Completed: true},
		{ID: 3, UserID: 7, Title: "Not mine"},
	}
}

func TestListShowsUserTodos(t *testing.T) {
	h := newHarness(t, seed()...)
	r := h.run("", "ls")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "Buy milk")
	assert.Contains(t, r.out, "Walk dog")
	assert.NotContains(t, r.out, "Not mine")
	assert.Contains(t, r.out, "Total 2")
}

func TestFlagOverridesBadEnvValue(t *testing.T) {
	h := newHarness(t, seed()...)
	t.Setenv("TADA_USER_ID", "-1")
	r := h.run("", "ls")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "Buy milk")
}

func TestInvalidConfigIsUsageError(t *testing.T) {
	h := newHarness(t, seed()...)
	t.Setenv("TADA_THEME", "pink")
	r := h.run("", "ls")
	assert.Equal(t, 2, r.code)
}

func TestLogFileClosedAfterFailure(t *testing.T) {
	h := newHarness(t)
	logPath := filepath.Join(t.TempDir(), "tada.log")
	t.Setenv("TADA_LOG_FILE", logPath)
	h.srv.Fail(http.MethodGet, "/todos", http.StatusInternalServerError)

	app := cli.NewApp()
	cmd := app.RootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ls", "--api-url", h.srv.URL, "--no-color"})
	require.Error(t, cmd.ExecuteContext(context.Background()))

	require.NoError(t, app.Close())
	require.NoError(t, app.Close(), "second close is a no-op")
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Unable to load todos")
}

func TestListFilter(t *testing.T) {
	h := newHarness(t, seed()...)
	r := h.run("", "ls", "--filter", "active")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "Buy milk")
	assert.NotContains(t, r.out, "Walk dog")
	assert.Contains(t, r.out, "Filter: active")

	r = h.run("", "ls", "--filter", "bogus")
	assert.Equal(t, 2, r.code)
}

func TestListGroup(t *testing.T) {
	h := newHarness(t, seed()...)
	r := h.run("", "ls", "--group")
	require.Equal(t, 0, r.code, r.err)
	pending := strings.Index(r.out, "Pending")
	done := strings.Index(r.out, "Done")
	require.True(t, pending >= 0 && done > pending, r.out)
	assert.Less(t, strings.Index(r.out, "Buy milk"), done)
	assert.Greater(t, strings.Index(r.out, "Walk dog"), done)
}

func TestListLoadFailure(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail(http.MethodGet, "/todos", http.StatusInternalServerError)
	r := h.run("", "ls")
	assert.Equal(t, 1, r.code)
}

func TestAdd(t *testing.T) {
	h := newHarness(t)
	r := h.run("", "add", "Buy", "milk")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "added #100 Buy milk")
	assert.Equal(t, []model.Todo{{ID: 100, UserID: 6, Title: "Buy milk"}}, h.srv.Todos())
}

func TestAddEmptyTitleSendsNothing(t *testing.T) {
	h := newHarness(t)
	r := h.run("", "add", "   ")
	assert.Equal(t, 1, r.code)
	for _, req := range h.srv.Requests() {
		assert.NotEqual(t, http.MethodPost, req.Method)
	}
}

func TestDoneTogglesByIndex(t *testing.T) {
	h := newHarness(t, seed()...)
	r := h.run("", "done", "1")
	require.Equal(t, 0, r.code, r.err)
	assert.True(t, h.srv.Todos()[0].Completed)
}

func TestDoneBadIndex(t *testing.T) {
	h := newHarness(t, seed()...)

	r := h.run("", "done", "9")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "todo ls")

	r = h.run("", "done", "x")
	assert.Equal(t, 2, r.code)
}

func TestToggleAll(t *testing.T) {
	h := newHarness(t, seed()...)
	r := h.run("", "toggle-all")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "0 active, 2 completed")
	todos := h.srv.Todos()
	assert.True(t, todos[0].Completed)
	assert.True(t, todos[1].Completed)
	assert.False(t, todos[2].Completed)
}

func TestEditRenamesAndDeletes(t *testing.T) {
	h := newHarness(t, seed()...)

	r := h.run("", "edit", "1", "Buy", "oat", "milk")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "updated")
	assert.Equal(t, "Buy oat milk", h.srv.Todos()[0].Title)

	n := len(h.srv.Requests())
	r = h.run("", "edit", "1", "Buy oat milk")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "unchanged")
	assert.Len(t, h.srv.Requests(), n+1, "only the list request")

	r = h.run("", "edit", "1")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "removed")
	assert.Len(t, h.srv.Todos(), 2)
}

func TestRemoveFailure(t *testing.T) {
	h := newHarness(t, seed()...)
	h.srv.Fail(http.MethodDelete, "/todos/1", http.StatusInternalServerError)
	r := h.run("", "rm", "1")
	assert.Equal(t, 1, r.code)
	assert.Len(t, h.srv.Todos(), 3)
}

func TestClearCompleted(t *testing.T) {
	h := newHarness(t, seed()...)
	r := h.run("", "clear-completed")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "cleared 1")
	for _, td := range h.srv.Todos() {
		assert.NotEqual(t, 2, td.ID)
	}
}

func TestAuthLoginSendsBearer(t *testing.T) {
	h := newHarness(t)

	r := h.run("tok123\n", "auth", "login")
	require.Equal(t, 0, r.code, r.err)
	info, err := os.Stat(filepath.Join(h.home, ".tada", "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	r = h.run("", "auth", "status")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "source: file")

	r = h.run("", "add", "secret")
	require.Equal(t, 0, r.code, r.err)
	reqs := h.srv.Requests()
	assert.Equal(t, "Bearer tok123", reqs[len(reqs)-1].Header.Get("Authorization"))

	r = h.run("", "auth", "logout")
	require.Equal(t, 0, r.code, r.err)
	r = h.run("", "auth", "status")
	assert.Contains(t, r.out, "not logged in")
}

func TestAuthWhoami(t *testing.T) {
	h := newHarness(t)

	r := h.run("", "auth", "whoami")
	assert.Equal(t, 2, r.code)

	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"6"}`))
	t.Setenv("TADA_TOKEN", "Bearer hdr."+payload+".sig")
	r = h.run("", "auth", "whoami")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, `{"sub":"6"}`)
}
