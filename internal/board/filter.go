package board

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/idilsaglam/taskboard/internal/model"
)

// PriorityFilter is a priority or PriorityAll.
type PriorityFilter string

const PriorityAll PriorityFilter = "all"

// PriorityFilters is the cycle order used by the interactive board.
var PriorityFilters = []PriorityFilter{
	PriorityAll,
	PriorityFilter(model.PriorityHigh),
	PriorityFilter(model.PriorityMedium),
	PriorityFilter(model.PriorityLow),
}

// ParsePriorityFilter accepts "all" (or blank) and any priority name.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(PriorityAll) {
		return PriorityAll, nil
	}
	p, err := model.ParsePriority(s)
	if err != nil {
		return "", fmt.Errorf("priority filter: %w", err)
	}
	return PriorityFilter(p), nil
}

// Next cycles all -> high -> medium -> low -> all.
func (f PriorityFilter) Next() PriorityFilter {
	i := slices.Index(PriorityFilters, f)
	return PriorityFilters[(i+1)%len(PriorityFilters)]
}

func (f PriorityFilter) matches(p model.Priority) bool {
	return f == "" || f == PriorityAll || model.Priority(f) == p
}

// Query selects tasks by title substring and priority.
type Query struct {
	Search   string
	Priority PriorityFilter
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Matches reports whether t passes both filters. The search is a
// case-insensitive substring match on the title.
func (q Query) Matches(t model.Task) bool {
	if !q.Priority.matches(t.Priority) {
		return false
	}
	if q.Search == "" {
		return true
	}
	return strings.Contains(fold(t.Title), fold(q.Search))
}

// Apply returns the matching tasks sorted by due date ascending, undated
// tasks last. Tasks with equal dates keep their input order.
func Apply(tasks []model.Task, q Query) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, compareDue)
	return out
}

func compareDue(a, b model.Task) int {
	switch az, bz := a.DueDate.IsZero(), b.DueDate.IsZero(); {
	case az && bz:
		return 0
	case az:
		return 1
	case bz:
		return -1
	}
	return a.DueDate.Time().Compare(b.DueDate.Time())
}

// Column is one status column of the board.
type Column struct {
	Status model.Status
	Tasks  []model.Task
}

// Columns groups tasks by status in board order, preserving order within
// each column. Every column is present, possibly empty.
func Columns(tasks []model.Task) []Column {
	cols := make([]Column, len(model.Statuses))
	for i, st := range model.Statuses {
		cols[i] = Column{Status: st, Tasks: []model.Task{}}
	}
	for _, t := range tasks {
		if i := slices.Index(model.Statuses, t.Status); i >= 0 {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// Progress counts done tasks against the total.
func Progress(tasks []model.Task) (done, total int) {
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			done++
		}
	}
	return done, len(tasks)
}
