// Package tui is the interactive three-column board.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/model"
)

type Options struct {
	Board  *board.Store
	Theme  string
	Now    func() time.Time
	Logger *slog.Logger
	Input  io.Reader
	Output io.Writer
}

type mode int

const (
	modeBoard mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirmDelete
	modeConfirmReset
)

// Model is the Bubble Tea model over a board store.
type Model struct {
	ctx    context.Context
	board  *board.Store
	now    func() time.Time
	log    *slog.Logger
	keys   keyMap
	help   help.Model
	input  textinput.Model
	styles styles
	theme  string

	query        board.Query
	col          int
	sel          [3]int
	mode         mode
	pendingID    string
	showActivity bool

	status    string
	statusErr bool

	width, height int
}

func New(ctx context.Context, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		ctx:    ctx,
		board:  opts.Board,
		now:    opts.Now,
		log:    opts.Logger,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  ti,
		styles: newStyles(opts.Theme),
		theme:  opts.Theme,
		query:  board.Query{Priority: board.PriorityAll},
		width:  100,
		height: 30,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(New(ctx, opts), popts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive board: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

// columns is the filtered board as currently displayed.
func (m Model) columns() []board.Column {
	return board.Columns(board.Apply(m.board.Tasks(), m.query))
}

func (m Model) selected() (model.Task, bool) {
	cols := m.columns()
	tasks := cols[m.col].Tasks
	i := m.sel[m.col]
	if i < 0 || i >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[i], true
}

// clamp keeps every column's cursor inside its task list.
func (m *Model) clamp() {
	for i, col := range m.columns() {
		if m.sel[i] >= len(col.Tasks) {
			m.sel[i] = len(col.Tasks) - 1
		}
		if m.sel[i] < 0 {
			m.sel[i] = 0
		}
	}
}

// focus moves the cursor onto the task with id, wherever it is displayed.
func (m *Model) focus(id string) {
	for c, col := range m.columns() {
		for i, t := range col.Tasks {
			if t.ID == id {
				m.col, m.sel[c] = c, i
				return
			}
		}
	}
	m.clamp()
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *Model) setError(action string, err error) {
	m.log.Error(action, "err", err)
	m.status, m.statusErr = action+": "+err.Error(), true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete, modeConfirmReset:
			return m.updateConfirm(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, k.Right):
		if m.col < len(model.Statuses)-1 {
			m.col++
		}
	case key.Matches(msg, k.Up):
		if m.sel[m.col] > 0 {
			m.sel[m.col]--
		}
	case key.Matches(msg, k.Down):
		if _, ok := m.selected(); ok && m.sel[m.col] < len(m.columns()[m.col].Tasks)-1 {
			m.sel[m.col]++
		}

	case key.Matches(msg, k.MoveLeft), key.Matches(msg, k.MoveRight):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		next, ok := t.Status.Prev()
		if key.Matches(msg, k.MoveRight) {
			next, ok = t.Status.Next()
		}
		if !ok {
			return m, nil
		}
		if err := m.board.Move(m.ctx, t.ID, next); err != nil {
			m.setError("move", err)
			return m, nil
		}
		m.focus(t.ID)
		m.setStatus(fmt.Sprintf("Moved %q to %s", t.Title, next))

	case key.Matches(msg, k.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "New task title..."
		return m, m.input.Focus()
	case key.Matches(msg, k.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.pendingID = t.ID
		m.input.SetValue(t.Title)
		m.input.CursorEnd()
		m.input.Placeholder = "Edit task title..."
		return m, m.input.Focus()
	case key.Matches(msg, k.Delete):
		if t, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.pendingID = t.ID
		}
	case key.Matches(msg, k.Reset):
		m.mode = modeConfirmReset

	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.input.SetValue(m.query.Search)
		m.input.CursorEnd()
		m.input.Placeholder = "Search by title..."
		return m, m.input.Focus()
	case key.Matches(msg, k.Priority):
		m.query.Priority = m.query.Priority.Next()
		m.clamp()
	case key.Matches(msg, k.Activity):
		m.showActivity = !m.showActivity
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.leaveInput()
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status, m.statusErr = "Title cannot be empty", true
			return m, nil
		}
		if m.mode == modeAdd {
			t, err := m.board.Create(m.ctx, board.TaskInput{Title: title, Status: model.Statuses[m.col]})
			if err != nil {
				m.setError("add", err)
			} else {
				m.focus(t.ID)
				m.setStatus(fmt.Sprintf("Added %q", t.Title))
			}
		} else {
			id := m.pendingID
			if err := m.board.Update(m.ctx, id, board.Patch{Title: &title}); err != nil {
				m.setError("edit", err)
			} else {
				m.focus(id)
				m.setStatus("Saved")
			}
		}
		m.leaveInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateSearch filters as the user types; esc clears the search.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.query.Search = ""
		m.leaveInput()
		m.clamp()
		return m, nil
	case tea.KeyEnter:
		m.leaveInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query.Search = m.input.Value()
	m.clamp()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := msg.String() == "y" || msg.String() == "Y"
	switch {
	case !confirmed:
		m.setStatus("Cancelled")
	case m.mode == modeConfirmDelete:
		t, _ := m.board.Get(m.pendingID)
		if err := m.board.Delete(m.ctx, m.pendingID); err != nil {
			m.setError("delete", err)
		} else {
			m.setStatus(fmt.Sprintf("Deleted %q", t.Title))
		}
	case m.mode == modeConfirmReset:
		if err := m.board.Reset(m.ctx); err != nil {
			m.setError("reset", err)
		} else {
			m.sel = [3]int{}
			m.setStatus("Board reset")
		}
	}
	m.mode = modeBoard
	m.pendingID = ""
	m.clamp()
	return m, nil
}

func (m *Model) leaveInput() {
	m.mode = modeBoard
	m.pendingID = ""
	m.input.SetValue("")
	m.input.Blur()
}
