package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/taskboard/internal/board"
	"github.com/idilsaglam/taskboard/internal/model"
)

var now = time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func monoPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, ThemeByName("mono"), true), &out, &errOut
}

func fixtureTasks() []model.Task {
	return []model.Task{
		{
			ID: "0190ab12-aaaa-7000-8000-000000000001", Title: "Book flights",
			Description: "Window seat", Priority: model.PriorityHigh,
			DueDate: model.NewDate(2025, time.June, 10), Tags: []string{"travel"},
			Status: model.StatusTodo,
		},
		{
			ID: "0190ab12-bbbb-7000-8000-000000000002", Title: "Pay rent",
			Priority: model.PriorityHigh, DueDate: model.NewDate(2025, time.June, 1),
			Tags: []string{}, Status: model.StatusTodo,
		},
		{
			ID: "0190cd34-cccc-7000-8000-000000000003", Title: "Water plants",
			Priority: model.PriorityLow, Tags: []string{"home", "garden"},
			Status: model.StatusDoing,
		},
		{
			ID: "0190ef56-dddd-7000-8000-000000000004", Title: "Fix bug",
			Priority: model.PriorityMedium, DueDate: model.NewDate(2025, time.May, 20),
			Tags: []string{}, Status: model.StatusDone,
		},
	}
}

func TestBoardPanelGolden(t *testing.T) {
	p, _, _ := monoPrinter()
	all := fixtureTasks()
	cols := board.Columns(board.Apply(all, board.Query{}))

	out := p.Panel(p.BoardLines(all, cols, now))
	golden(t).Assert(t, "board", []byte(out))
}

func TestEmptyBoardGolden(t *testing.T) {
	p, _, _ := monoPrinter()
	out := p.Panel(p.BoardLines(nil, board.Columns(nil), now))
	golden(t).Assert(t, "board_empty", []byte(out))
}

func TestActivityGolden(t *testing.T) {
	p, _, _ := monoPrinter()
	entries := []model.ActivityLogEntry{
		{ID: "4", Action: model.ActionMoved, TaskTitle: "Pay rent", Timestamp: time.Date(2025, time.June, 5, 9, 30, 0, 0, time.UTC)},
		{ID: "3", Action: model.ActionEdited, TaskTitle: "Book flights", Timestamp: time.Date(2025, time.June, 4, 18, 5, 0, 0, time.UTC)},
		{ID: "2", Action: model.ActionCreated, TaskTitle: "Water plants", Timestamp: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)},
		{ID: "1", Action: model.ActionDeleted, TaskTitle: "Old task", Timestamp: time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)},
	}
	out := strings.Join(p.ActivityLines(entries, time.UTC), "\n") + "\n"
	golden(t).Assert(t, "activity", []byte(out))
}

func TestMonoNeverColors(t *testing.T) {
	p, out, errOut := monoPrinter()
	p.OK("added")
	p.Fail("boom")
	assert.Equal(t, "ok: added\n", out.String())
	assert.Equal(t, "error: boom\n", errOut.String())
}

func TestClassicColorsWhenEnabled(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ThemeByName("classic"), true)
	p.OK("saved")
	assert.Equal(t, fgGreen+"✔ saved"+reset+"\n", out.String())

	out.Reset()
	p = NewPrinter(&out, &out, ThemeByName("classic"), false)
	p.OK("saved")
	assert.Equal(t, "✔ saved\n", out.String())
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf, false, false), "buffers are not terminals")
	assert.True(t, ColorEnabled(&buf, true, false))
	assert.False(t, ColorEnabled(&buf, true, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(&buf, true, false))
}

func TestPanelIgnoresANSIWidth(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ThemeByName("classic"), true)
	got := p.Panel([]string{p.C(fgRed, "ab"), "abcd"})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Equal(t, "┌──────┐", lines[0])
	assert.Equal(t, "│ "+fgRed+"ab"+reset+"   │", lines[1])
	assert.Equal(t, "│ abcd │", lines[2])
}

func TestProgressBar(t *testing.T) {
	th := ThemeByName("mono")
	assert.Equal(t, "##### 100%", th.ProgressBar(3, 3, 5))
	assert.Equal(t, ".....   0%", th.ProgressBar(0, 0, 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "çççç...", Truncate("ççççççççç", 7))
}
