// Package tui is the interactive todo list: a new-todo field on top, the
// list in the middle and a footer with counts and the active filter.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/flow"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

// Messages produced by commands.
type (
	stateChangedMsg struct{}
	createdMsg      struct{ err error }
	editedMsg       struct{ err error }
	flowDoneMsg     struct{ err error }
	dismissErrorMsg struct {
		message string
		gen     int
	}
)

// Options tune the TUI.
type Options struct {
	// ErrorTimeout is how long a banner stays up. Zero keeps it until replaced.
	ErrorTimeout time.Duration
}

// Model is the Bubble Tea model. It renders store snapshots and turns
// keys into controller calls; it never mutates AppState itself.
type Model struct {
	ctx     context.Context
	ctrl    *flow.Controller
	changes <-chan struct{}
	state   store.AppState
	opt     Options

	list    list.Model
	input   textinput.Model
	header  flow.Header
	editor  flow.Editor
	edit    textinput.Model
	spinner spinner.Model
	keys    keyMap
	focus   focus

	// bannerGen counts scheduled dismissals; only the latest one fires.
	bannerGen int

	width, height int
}

func New(ctx context.Context, ctrl *flow.Controller, opt Options) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 76, 14)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.SetShowHelp(true)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp

	in := textinput.New()
	in.Prompt = "❯ "
	in.Placeholder = "What needs to be done?"
	in.CharLimit = 200
	in.Focus()

	ed := textinput.New()
	ed.Prompt = "> "
	ed.Placeholder = "Edit item title..."
	ed.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle
	l.SetDelegate(itemDelegate{frame: sp.View()})

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		changes: ctrl.Store().Subscribe(),
		opt:     opt,
		list:    l,
		input:   in,
		edit:    ed,
		spinner: sp,
		keys:    keys,
		focus:   focusInput,
		width:   80,
		height:  24,
	}
	m.sync()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl *flow.Controller, opt Options) error {
	p := tea.NewProgram(New(ctx, ctrl, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(m.ctrl.Load), m.waitForChange(), m.spinner.Tick, textinput.Blink)
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// run executes a flow off the UI goroutine.
func (m Model) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg { return flowDoneMsg{err: fn(m.ctx)} }
}

// sync copies the latest store snapshot into the view.
func (m *Model) sync() tea.Cmd {
	m.state = m.ctrl.Store().State()

	visible := m.state.Visible()
	items := make([]list.Item, 0, len(visible)+1)
	for _, t := range visible {
		items = append(items, todoItem{todo: t, loading: m.state.IsLoading(t.ID)})
	}
	if tmp := m.state.TempTodo; tmp != nil {
		items = append(items, todoItem{todo: *tmp, loading: m.state.IsLoading(0), temp: true})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	if m.state.IsInputFocused {
		m.ctrl.Store().Dispatch(store.SetIsInputFocused{Focused: false})
		if m.focus != focusEdit {
			return m.focusInput()
		}
	}
	return nil
}

// dismissLater restarts the banner countdown for a failed flow. Each failure
// gets a new generation, so a repeated banner keeps its full timeout.
func (m *Model) dismissLater(err error) tea.Cmd {
	var fe *flow.Error
	if m.opt.ErrorTimeout <= 0 || !errors.As(err, &fe) {
		return nil
	}
	m.bannerGen++
	gen, msg := m.bannerGen, fe.Banner
	return tea.Tick(m.opt.ErrorTimeout, func(time.Time) tea.Msg {
		return dismissErrorMsg{message: msg, gen: gen}
	})
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.edit.Blur()
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok || it.temp || it.loading {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(m.width-4, 20), max(m.height-10, 3))
		return m, nil

	case stateChangedMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, m.waitForChange())

	case dismissErrorMsg:
		if msg.gen == m.bannerGen {
			m.ctrl.DismissError(msg.message)
		}
		return m, nil

	case createdMsg:
		m.header.Submitted = false
		if msg.err == nil {
			m.header.Title = ""
			m.input.SetValue("")
		}
		return m, m.dismissLater(msg.err)

	case editedMsg:
		if msg.err == nil {
			m.editor.Done()
			m.focusList()
			return m, nil
		}
		return m, tea.Batch(m.edit.Focus(), m.dismissLater(msg.err))

	case flowDoneMsg:
		return m, m.dismissLater(msg.err)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.list.SetDelegate(itemDelegate{frame: m.spinner.View()})
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusList):
		m.focusList()
		return m, nil
	case m.header.Submitted:
		// The field is disabled while a create is in flight.
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.header.Title = m.input.Value()
		d, err := m.ctrl.BeginCreate(m.header.Title)
		if err != nil {
			return m, m.dismissLater(err)
		}
		m.header.Submitted = true
		return m, func() tea.Msg {
			_, err := m.ctrl.FinishCreate(m.ctx, d)
			return createdMsg{err: err}
		}
	case key.Matches(msg, m.keys.Cancel):
		m.header.Title = ""
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.header.Title = m.input.Value()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusInput):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.run(func(ctx context.Context) error { return m.ctrl.Toggle(ctx, t.ID) })
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleAll):
		if len(m.state.Todos) == 0 {
			return m, nil
		}
		return m, m.run(m.ctrl.ToggleAll)
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.run(func(ctx context.Context) error { return m.ctrl.Remove(ctx, t.ID) })
		}
		return m, nil
	case key.Matches(msg, m.keys.ClearCompleted):
		if !m.state.HasCompleted() {
			return m, nil
		}
		return m, m.run(m.ctrl.ClearCompleted)
	case key.Matches(msg, m.keys.Filter):
		m.ctrl.SetFilter(m.state.Filter.Next())
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editor.Begin(t)
		m.edit.SetValue(m.editor.Buffer())
		m.edit.CursorEnd()
		m.focus = focusEdit
		return m, m.edit.Focus()
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.Cancel()
		m.edit.SetValue(m.editor.Buffer())
		m.focusList()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.editor.SetBuffer(m.edit.Value())
		plan, title := m.editor.Plan()
		id := m.editor.Todo().ID
		switch plan {
		case flow.EditDelete:
			return m, func() tea.Msg { return editedMsg{err: m.ctrl.Remove(m.ctx, id)} }
		case flow.EditRename:
			return m, func() tea.Msg {
				_, err := m.ctrl.Rename(m.ctx, id, title)
				return editedMsg{err: err}
			}
		default:
			m.editor.Done()
			m.focusList()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.editor.SetBuffer(m.edit.Value())
	return m, cmd
}
