package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/taskboard/internal/model"
)

type styles struct {
	title, success, pending, accent, muted, err lipgloss.Style
	selected, done, overdue, help               lipgloss.Style
	high, medium, low                           lipgloss.Style
	column, focused, bar                        lipgloss.Style
}

func newStyles(theme string) styles {
	accent, border := lipgloss.Color("12"), lipgloss.Color("8")
	success, pending, errc := lipgloss.Color("42"), lipgloss.Color("214"), lipgloss.Color("9")
	if strings.EqualFold(theme, "neon") {
		accent, success, pending = lipgloss.Color("51"), lipgloss.Color("46"), lipgloss.Color("226")
	}

	s := styles{
		title:    lipgloss.NewStyle().Bold(true),
		success:  lipgloss.NewStyle().Foreground(success),
		pending:  lipgloss.NewStyle().Foreground(pending),
		accent:   lipgloss.NewStyle().Foreground(accent),
		muted:    lipgloss.NewStyle().Faint(true),
		err:      lipgloss.NewStyle().Foreground(errc).Bold(true),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		overdue:  lipgloss.NewStyle().Foreground(errc),
		help:     lipgloss.NewStyle().Faint(true),
		high:     lipgloss.NewStyle().Foreground(errc),
		medium:   lipgloss.NewStyle().Foreground(pending),
		low:      lipgloss.NewStyle().Foreground(success),
		column:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		focused:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		bar:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
	}
	if strings.EqualFold(theme, "mono") {
		plain := lipgloss.NewStyle()
		s.success, s.pending, s.accent, s.err = plain, plain, plain, plain.Bold(true)
		s.overdue, s.high, s.medium, s.low = plain, plain, plain, plain
		s.column = s.column.UnsetBorderForeground()
		s.focused = s.focused.UnsetBorderForeground().BorderStyle(lipgloss.ThickBorder())
	}
	return s
}

func (s styles) priority(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return s.high
	case model.PriorityLow:
		return s.low
	}
	return s.medium
}
