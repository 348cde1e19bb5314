package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/model"
)

const (
	DateFormat      = "Jan 02, 2006"
	TimestampFormat = "Jan 02, 2006 15:04"

	// ShortIDLen is the minimum id prefix shown for a task.
	ShortIDLen = 8
	titleWidth = 60
)

// ColumnTitle is the heading of a status column.
func ColumnTitle(s model.Status) string {
	switch s {
	case model.StatusTodo:
		return "Todo"
	case model.StatusDoing:
		return "Doing"
	case model.StatusDone:
		return "Done"
	}
	return string(s)
}

// ActionLabel is the human label of an activity action.
func ActionLabel(a model.Action) string {
	switch a {
	case model.ActionCreated:
		return "Task created"
	case model.ActionEdited:
		return "Task edited"
	case model.ActionMoved:
		return "Task moved"
	case model.ActionDeleted:
		return "Task deleted"
	}
	return string(a)
}

func FormatDate(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateFormat)
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func (t Theme) PriorityColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return t.High
	case model.PriorityLow:
		return t.Low
	}
	return t.Medium
}

// BoardLines renders a progress header over all tasks followed by the
// (filtered) columns.
func (p *Printer) BoardLines(all []model.Task, cols []board.Column, now time.Time) []string {
	t := p.Theme
	done, total := board.Progress(all)
	short := board.ShortIDs(all, ShortIDLen)

	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			p.C(t.Title, "Task Board"),
			p.C(t.Success, t.SymDone), done,
			p.C(t.Pending, t.SymOpen), total-done,
			p.C(t.Accent, "Total"), total,
		),
		p.C(t.Muted, t.ProgressBar(done, total, 28)),
	}
	for _, col := range cols {
		lines = append(lines, "", p.C(t.Accent, fmt.Sprintf("%s (%d)", ColumnTitle(col.Status), len(col.Tasks))))
		if len(col.Tasks) == 0 {
			lines = append(lines, p.C(t.Muted, "  No tasks in this column"))
			continue
		}
		for _, task := range col.Tasks {
			lines = append(lines, p.TaskLine(task, short[task.ID], now))
			if task.Description != "" {
				lines = append(lines, p.C(t.Muted, "      "+Truncate(task.Description, titleWidth)))
			}
		}
	}
	return lines
}

// TaskLine renders one task: status mark, id, title, priority, due date, tags.
func (p *Printer) TaskLine(task model.Task, id string, now time.Time) string {
	t := p.Theme
	overdue := task.IsOverdue(now)
	sym, symColor := t.SymOpen, t.Pending
	switch {
	case task.Status == model.StatusDone:
		sym, symColor = t.SymDone, t.Success
	case overdue:
		sym, symColor = t.SymOverdue, t.Error
	}

	parts := []string{
		"  " + p.C(symColor, sym) + " " + p.C(dim, id) + "  " + Truncate(task.Title, titleWidth),
		p.C(t.PriorityColor(task.Priority), string(task.Priority)),
	}
	if !task.DueDate.IsZero() {
		due := "due " + FormatDate(task.DueDate)
		if overdue {
			due = p.C(t.Error, due+" (overdue)")
		}
		parts = append(parts, due)
	}
	if len(task.Tags) > 0 {
		parts = append(parts, p.C(t.Muted, "#"+strings.Join(task.Tags, " #")))
	}
	return strings.Join(parts, "  ")
}

// ActivityLines renders the log newest first, timestamps shown in loc.
func (p *Printer) ActivityLines(entries []model.ActivityLogEntry, loc *time.Location) []string {
	t := p.Theme
	lines := []string{p.C(t.Title, fmt.Sprintf("Activity (%d)", len(entries)))}
	if len(entries) == 0 {
		return append(lines, p.C(t.Muted, "  No activity yet"))
	}
	for _, e := range entries {
		label := fmt.Sprintf("%-12s", ActionLabel(e.Action))
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			p.C(t.Muted, e.Timestamp.In(loc).Format(TimestampFormat)),
			p.C(p.actionColor(e.Action), label),
			e.TaskTitle,
		))
	}
	return lines
}

func (p *Printer) actionColor(a model.Action) string {
	switch a {
	case model.ActionCreated:
		return p.Theme.Success
	case model.ActionEdited:
		return p.Theme.Accent
	case model.ActionMoved:
		return fgMagenta
	case model.ActionDeleted:
		return p.Theme.Error
	}
	return p.Theme.Muted
}
