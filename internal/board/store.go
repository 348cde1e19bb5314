// Package board holds the task store: the task collection, the activity log
// derived from its mutations, and persistence of both as one snapshot.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/store"
)

const (
	// StorageKey is the key the board snapshot is persisted under.
	StorageKey = "taskBoardData"
	// MaxActivityEntries caps the activity log; older entries are evicted.
	MaxActivityEntries = 50
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrAmbiguousID  = errors.New("ambiguous task id")
)

type Options struct {
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// NewID defaults to UUIDv7 strings.
	NewID func() string
}

// Store owns the tasks and the activity log. It is not safe for concurrent use.
type Store struct {
	storage  store.Storage
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	tasks    []model.Task
	activity []model.ActivityLogEntry
}

// Open loads the snapshot from st. A missing or malformed snapshot yields an
// empty board; only storage I/O failures are returned.
func Open(ctx context.Context, st store.Storage, opts Options) (*Store, error) {
	s := &Store{
		storage: st,
		log:     opts.Logger,
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	s.tasks = []model.Task{}
	s.activity = []model.ActivityLogEntry{}

	raw, err := s.storage.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case errors.Is(err, store.ErrCorrupt):
		s.log.Warn("board storage unreadable, starting empty", "err", err)
		return nil
	case err != nil:
		return fmt.Errorf("load board: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn("malformed board snapshot, starting empty", "err", err)
		return nil
	}

	seen := make(map[string]bool, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if t.ID == "" || seen[t.ID] {
			s.log.Warn("dropping task with missing or duplicate id", "id", t.ID, "title", t.Title)
			continue
		}
		seen[t.ID] = true
		if !t.Priority.Valid() {
			t.Priority = model.PriorityMedium
		}
		if !t.Status.Valid() {
			t.Status = model.StatusTodo
		}
		t.Tags = model.NormalizeTags(t.Tags)
		s.tasks = append(s.tasks, t)
	}
	if snap.ActivityLog != nil {
		s.activity = snap.ActivityLog
	}
	slices.SortStableFunc(s.activity, func(a, b model.ActivityLogEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(s.activity) > MaxActivityEntries {
		s.activity = s.activity[:MaxActivityEntries]
	}
	s.log.Debug("board loaded", "tasks", len(s.tasks), "activity", len(s.activity))
	return nil
}

func (s *Store) save(ctx context.Context) error {
	b, err := json.Marshal(model.Snapshot{Tasks: s.tasks, ActivityLog: s.activity})
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, b); err != nil {
		s.log.Error("persist board", "err", err)
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// record prepends an entry and evicts past the cap.
func (s *Store) record(action model.Action, t model.Task) {
	entry := model.ActivityLogEntry{
		ID:        s.newID(),
		Action:    action,
		TaskTitle: t.Title,
		TaskID:    t.ID,
		Timestamp: s.now().UTC(),
	}
	s.activity = append([]model.ActivityLogEntry{entry}, s.activity...)
	if len(s.activity) > MaxActivityEntries {
		s.activity = s.activity[:MaxActivityEntries]
	}
}

// TaskInput is the data of a new task. Zero fields take defaults:
// priority medium, status todo, no tags.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     model.Date
	Tags        []string
	Status      model.Status
}

// Create appends a task built from in and logs "created".
func (s *Store) Create(ctx context.Context, in TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, model.ErrTitleRequired
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, priority)
	}
	status := in.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !status.Valid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}

	t := model.Task{
		ID:          s.newID(),
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        model.NormalizeTags(in.Tags),
		Status:      status,
		CreatedAt:   s.now().UTC(),
	}
	s.tasks = append(s.tasks, t)
	s.record(model.ActionCreated, t)
	s.log.Debug("task created", "id", t.ID, "title", t.Title)
	return t.Clone(), s.save(ctx)
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	DueDate     *model.Date
	Tags        *[]string
	Status      *model.Status
}

func (p Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return model.ErrTitleRequired
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidPriority, *p.Priority)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidStatus, *p.Status)
	}
	return nil
}

// Update merges p into the task with the given id. A status change logs
// "moved"; otherwise a title or description change logs "edited". Other
// changes are applied without an entry. An unknown id is a no-op.
func (s *Store) Update(ctx context.Context, id string, p Patch) error {
	if err := p.validate(); err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		s.log.Debug("update of unknown task ignored", "id", id)
		return nil
	}

	before := s.tasks[i]
	after := before.Clone()
	if p.Title != nil {
		after.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		after.Description = *p.Description
	}
	if p.Priority != nil {
		after.Priority = *p.Priority
	}
	if p.DueDate != nil {
		after.DueDate = *p.DueDate
	}
	if p.Tags != nil {
		after.Tags = model.NormalizeTags(*p.Tags)
	}
	if p.Status != nil {
		after.Status = *p.Status
	}
	s.tasks[i] = after

	switch {
	case after.Status != before.Status:
		s.record(model.ActionMoved, before)
	case after.Title != before.Title || after.Description != before.Description:
		s.record(model.ActionEdited, after)
	}
	return s.save(ctx)
}

// Move changes a task's column.
func (s *Store) Move(ctx context.Context, id string, status model.Status) error {
	return s.Update(ctx, id, Patch{Status: &status})
}

// Delete removes a task and logs "deleted". An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("delete of unknown task ignored", "id", id)
		return nil
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.record(model.ActionDeleted, t)
	return s.save(ctx)
}

// Reset empties the board and removes its persisted snapshot.
func (s *Store) Reset(ctx context.Context) error {
	s.tasks = []model.Task{}
	s.activity = []model.ActivityLogEntry{}
	if err := s.storage.Remove(ctx, StorageKey); err != nil {
		return fmt.Errorf("reset board: %w", err)
	}
	s.log.Info("board reset")
	return nil
}

// Tasks returns a copy of all tasks in insertion order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// ActivityLog returns a copy of the log, newest first.
func (s *Store) ActivityLog() []model.ActivityLogEntry {
	return append([]model.ActivityLogEntry{}, s.activity...)
}

// Snapshot returns a copy of the full board state.
func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{Tasks: s.Tasks(), ActivityLog: s.ActivityLog()}
}

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Resolve finds a task by full id or by a unique id prefix.
func (s *Store) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}
	if t, ok := s.Get(ref); ok {
		return t, nil
	}
	var matches []model.Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	case 1:
		return matches[0].Clone(), nil
	default:
		return model.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousID, ref, len(matches))
	}
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
