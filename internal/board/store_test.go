package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/store"
	"github.com/idilsaglam/taskboard/internal/store/memstore"
)

var epoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// testOptions returns a ticking clock and a counter id generator.
func testOptions() Options {
	n := 0
	tick := 0
	return Options{
		Now: func() time.Time {
			tick++
			return epoch.Add(time.Duration(tick) * time.Second)
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%03d", n)
		},
	}
}

func openTest(t *testing.T, st store.Storage) *Store {
	t.Helper()
	s, err := Open(context.Background(), st, testOptions())
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T { return &v }

func TestCreateLogsCreated(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())

	task, err := s.Create(ctx, TaskInput{Title: "  Write report  "})
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, []string{}, task.Tags)
	assert.Equal(t, "", task.Description)

	log := s.ActivityLog()
	require.Len(t, log, 1)
	assert.Equal(t, model.ActionCreated, log[0].Action)
	assert.Equal(t, task.ID, log[0].TaskID)
	assert.Equal(t, "Write report", log[0].TaskTitle)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())

	_, err := s.Create(ctx, TaskInput{Title: "   "})
	assert.ErrorIs(t, err, model.ErrTitleRequired)

	_, err = s.Create(ctx, TaskInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, model.ErrInvalidPriority)

	_, err = s.Create(ctx, TaskInput{Title: "x", Status: "blocked"})
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.ActivityLog())
}

func TestUpdateStatusOnlyLogsMoved(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	task, err := s.Create(ctx, TaskInput{Title: "Ship"})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, task.ID, Patch{Status: ptr(model.StatusDoing)}))

	log := s.ActivityLog()
	require.Len(t, log, 2)
	assert.Equal(t, model.ActionMoved, log[0].Action)
	assert.Equal(t, model.ActionCreated, log[1].Action)

	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusDoing, got.Status)
}

func TestUpdateMovedTakesPrecedence(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	task, _ := s.Create(ctx, TaskInput{Title: "Old"})

	require.NoError(t, s.Update(ctx, task.ID, Patch{
		Title:  ptr("New"),
		Status: ptr(model.StatusDone),
	}))

	log := s.ActivityLog()
	require.Len(t, log, 2)
	assert.Equal(t, model.ActionMoved, log[0].Action)
	assert.Equal(t, "Old", log[0].TaskTitle)
}

func TestUpdateTitleLogsEditedWithNewTitle(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	task, _ := s.Create(ctx, TaskInput{Title: "Old"})

	require.NoError(t, s.Update(ctx, task.ID, Patch{Title: ptr("New")}))

	log := s.ActivityLog()
	require.Len(t, log, 2)
	assert.Equal(t, model.ActionEdited, log[0].Action)
	assert.Equal(t, "New", log[0].TaskTitle)

	require.NoError(t, s.Update(ctx, task.ID, Patch{Description: ptr("details")}))
	assert.Len(t, s.ActivityLog(), 3)
}

func TestUpdateOtherFieldsIsSilent(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	task, _ := s.Create(ctx, TaskInput{Title: "T"})

	due := model.NewDate(2025, time.April, 2)
	require.NoError(t, s.Update(ctx, task.ID, Patch{
		Priority: ptr(model.PriorityHigh),
		DueDate:  &due,
		Tags:     &[]string{"a", " ", "b"},
		Title:    ptr("T"),
	}))

	assert.Len(t, s.ActivityLog(), 1)
	got, _ := s.Get(task.ID)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.True(t, got.DueDate.Equal(due))
	assert.Equal(t, []string{"a", "b"}, got.Tags)
}

func TestUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := openTest(t, st)

	assert.NoError(t, s.Update(ctx, "missing", Patch{Title: ptr("x")}))
	assert.NoError(t, s.Move(ctx, "missing", model.StatusDone))
	assert.NoError(t, s.Delete(ctx, "missing"))
	assert.Empty(t, s.ActivityLog())
	assert.Equal(t, 0, st.Len(), "no-op mutations do not persist")
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	task, _ := s.Create(ctx, TaskInput{Title: "T"})

	assert.ErrorIs(t, s.Update(ctx, task.ID, Patch{Title: ptr(" ")}), model.ErrTitleRequired)
	assert.ErrorIs(t, s.Move(ctx, task.ID, "later"), model.ErrInvalidStatus)
	assert.Len(t, s.ActivityLog(), 1)
}

func TestDeleteRemovesAndLogs(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	a, _ := s.Create(ctx, TaskInput{Title: "A"})
	b, _ := s.Create(ctx, TaskInput{Title: "B"})

	require.NoError(t, s.Delete(ctx, a.ID))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)

	log := s.ActivityLog()
	assert.Equal(t, model.ActionDeleted, log[0].Action)
	assert.Equal(t, "A", log[0].TaskTitle)
	assert.Equal(t, a.ID, log[0].TaskID)
}

func TestActivityLogCapped(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())

	var last model.Task
	for i := 0; i < MaxActivityEntries+10; i++ {
		var err error
		last, err = s.Create(ctx, TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}

	log := s.ActivityLog()
	assert.Len(t, log, MaxActivityEntries)
	assert.Equal(t, last.ID, log[0].TaskID, "newest first")
	assert.Equal(t, "task 10", log[len(log)-1].TaskTitle, "oldest entries evicted")
	assert.Len(t, s.Tasks(), MaxActivityEntries+10)
}

func TestReloadReproducesState(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := openTest(t, st)

	a, _ := s.Create(ctx, TaskInput{
		Title:    "A",
		Priority: model.PriorityHigh,
		DueDate:  model.NewDate(2025, time.March, 9),
		Tags:     []string{"work"},
	})
	_, _ = s.Create(ctx, TaskInput{Title: "B"})
	require.NoError(t, s.Move(ctx, a.ID, model.StatusDone))

	reloaded := openTest(t, st)
	assert.Equal(t, s.Tasks(), reloaded.Tasks())
	assert.Equal(t, s.ActivityLog(), reloaded.ActivityLog())
}

func TestMalformedSnapshotLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"not json":   `{{{`,
		"wrong type": `{"tasks":"nope"}`,
		"bad date":   `{"tasks":[{"id":"1","dueDate":"soon"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			st := memstore.New()
			require.NoError(t, st.Set(ctx, StorageKey, []byte(raw)))
			s := openTest(t, st)
			assert.Empty(t, s.Tasks())
			assert.Empty(t, s.ActivityLog())
		})
	}
}

func TestCorruptStorageLoadsEmpty(t *testing.T) {
	st := memstore.New()
	st.GetErr = fmt.Errorf("%w: bad file", store.ErrCorrupt)
	s := openTest(t, st)
	assert.Empty(t, s.Tasks())
}

func TestOpenReturnsIOErrors(t *testing.T) {
	st := memstore.New()
	st.GetErr = errors.New("disk gone")
	_, err := Open(context.Background(), st, testOptions())
	assert.Error(t, err)
}

func TestLoadSanitizes(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	raw := `{"tasks":[
		{"id":"1","title":"a","priority":"high","status":"doing","tags":null},
		{"id":"1","title":"dup"},
		{"id":"","title":"no id"},
		{"id":"2","title":"b","priority":"???","status":"???"}
	],"activityLog":null}`
	require.NoError(t, st.Set(ctx, StorageKey, []byte(raw)))

	s := openTest(t, st)
	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, []string{}, tasks[0].Tags)
	assert.Equal(t, model.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, model.StatusTodo, tasks[1].Status)
	assert.NotNil(t, s.ActivityLog())
}

func TestPersistErrorIsReturned(t *testing.T) {
	st := memstore.New()
	s := openTest(t, st)
	st.SetErr = errors.New("read-only")

	_, err := s.Create(context.Background(), TaskInput{Title: "x"})
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := openTest(t, st)
	_, _ = s.Create(ctx, TaskInput{Title: "x"})

	require.NoError(t, s.Reset(ctx))
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.ActivityLog())
	_, err := st.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	_, _ = s.Create(ctx, TaskInput{Title: "x", Tags: []string{"a"}})

	tasks := s.Tasks()
	tasks[0].Tags[0] = "mutated"
	tasks[0].Title = "mutated"
	assert.Equal(t, "x", s.Tasks()[0].Title)
	assert.Equal(t, "a", s.Tasks()[0].Tags[0])
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, memstore.New())
	a, _ := s.Create(ctx, TaskInput{Title: "A"}) // id-001
	b, _ := s.Create(ctx, TaskInput{Title: "B"}) // id-003

	got, err := s.Resolve(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	got, err = s.Resolve("id-003")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = s.Resolve("id-00")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = s.Resolve("zzz")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.Resolve("")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestLoadOrdersActivityNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	var stored []model.ActivityLogEntry
	for i := 0; i < MaxActivityEntries+2; i++ {
		stored = append(stored, model.ActivityLogEntry{
			ID:        fmt.Sprintf("e-%02d", i),
			Action:    model.ActionCreated,
			TaskTitle: fmt.Sprintf("t%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
	}
	raw, err := json.Marshal(model.Snapshot{Tasks: []model.Task{}, ActivityLog: stored})
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, StorageKey, raw))

	s := openTest(t, st)
	log := s.ActivityLog()
	require.Len(t, log, MaxActivityEntries)
	assert.Equal(t, "t51", log[0].TaskTitle)
	assert.Equal(t, "t2", log[len(log)-1].TaskTitle, "oldest entries evicted")

	_, err = s.Create(ctx, TaskInput{Title: "fresh"})
	require.NoError(t, err)
	log = s.ActivityLog()
	assert.Equal(t, "fresh", log[0].TaskTitle)
	assert.Equal(t, "t51", log[1].TaskTitle)
}
