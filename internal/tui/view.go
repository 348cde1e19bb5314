package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/ui"
)

const activityRows = 8

func (m Model) View() string {
	s := m.styles
	all := m.board.Tasks()
	cols := board.Columns(board.Apply(all, m.query))

	var sections []string
	sections = append(sections, m.header(all))

	colWidth := max((m.width-2)/len(cols)-4, 16)
	views := make([]string, len(cols))
	for i, col := range cols {
		views[i] = m.columnView(i, col, colWidth)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, views...))

	if m.showActivity {
		sections = append(sections, m.activityView())
	}

	switch m.mode {
	case modeAdd, modeEdit, modeSearch:
		title := map[mode]string{modeAdd: "Add task", modeEdit: "Edit task", modeSearch: "Search"}[m.mode]
		sections = append(sections, s.bar.Render(title+"\n"+m.input.View()))
	case modeConfirmDelete:
		t, _ := m.board.Get(m.pendingID)
		sections = append(sections, s.err.Render(fmt.Sprintf("Delete %q? (y/n)", t.Title)))
	case modeConfirmReset:
		sections = append(sections, s.err.Render("Reset the board? All tasks and activity are removed. (y/n)"))
	}

	if m.status != "" {
		st := s.muted
		if m.statusErr {
			st = s.err
		}
		sections = append(sections, st.Render(m.status))
	}
	sections = append(sections, s.help.Render(m.help.View(m.keys)))
	return strings.Join(sections, "\n")
}

func (m Model) header(all []model.Task) string {
	s := m.styles
	th := ui.ThemeByName(m.theme)
	done, total := board.Progress(all)
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		s.title.Render("Task Board"),
		s.success.Render(th.SymDone), done,
		s.pending.Render(th.SymOpen), total-done,
		s.accent.Render("Total"), total,
	)
	bar := s.muted.Render(th.ProgressBar(done, total, 28))

	search := m.query.Search
	if search == "" {
		search = "(none)"
	}
	filters := s.muted.Render(fmt.Sprintf("search: %s   priority: %s", search, m.query.Priority))
	return counts + "\n" + bar + "\n" + filters
}

func (m Model) columnView(i int, col board.Column, width int) string {
	s := m.styles
	lines := []string{s.accent.Render(fmt.Sprintf("%s (%d)", ui.ColumnTitle(col.Status), len(col.Tasks))), ""}
	if len(col.Tasks) == 0 {
		lines = append(lines, s.muted.Render("No tasks in this column"))
	}
	for j, t := range col.Tasks {
		lines = append(lines, m.card(t, i == m.col && j == m.sel[i], width)...)
	}
	style := s.column
	if i == m.col {
		style = s.focused
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// card renders one task as a title line and a detail line.
func (m Model) card(t model.Task, selected bool, width int) []string {
	s := m.styles
	now := m.now()

	title := ui.Truncate(t.Title, max(width-2, 4))
	switch {
	case t.Status == model.StatusDone:
		title = s.done.Render(title)
	case t.IsOverdue(now):
		title = s.overdue.Render("! " + title)
	}
	prefix := "  "
	if selected {
		prefix = s.selected.Render("> ")
	}

	details := []string{s.priority(t.Priority).Render(string(t.Priority))}
	if !t.DueDate.IsZero() {
		due := ui.FormatDate(t.DueDate)
		if t.IsOverdue(now) {
			due = s.overdue.Render(due)
		}
		details = append(details, due)
	}
	if len(t.Tags) > 0 {
		details = append(details, s.muted.Render("#"+strings.Join(t.Tags, " #")))
	}
	return []string{prefix + title, "  " + strings.Join(details, " · ")}
}

func (m Model) activityView() string {
	s := m.styles
	entries := m.board.ActivityLog()
	lines := []string{s.title.Render("Activity")}
	if len(entries) == 0 {
		lines = append(lines, s.muted.Render("No activity yet"))
	}
	for i, e := range entries {
		if i == activityRows {
			lines = append(lines, s.muted.Render(fmt.Sprintf("… %d more", len(entries)-activityRows)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s  %-12s  %s",
			s.muted.Render(e.Timestamp.Local().Format(ui.TimestampFormat)),
			ui.ActionLabel(e.Action),
			e.TaskTitle,
		))
	}
	return s.bar.Render(strings.Join(lines, "\n"))
}
