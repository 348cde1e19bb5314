package model

import "time"

// Action names a task mutation recorded in the activity log.
type Action string

const (
	ActionCreated Action = "created"
	ActionEdited  Action = "edited"
	ActionMoved   Action = "moved"
	ActionDeleted Action = "deleted"
)

// ActivityLogEntry records one mutation. Entries are kept newest-first.
type ActivityLogEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Action    Action    `json:"action" yaml:"action"`
	TaskTitle string    `json:"taskTitle" yaml:"taskTitle"`
	TaskID    string    `json:"taskId" yaml:"taskId"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Snapshot is the persisted board: the sole value under the board storage key.
type Snapshot struct {
	Tasks       []Task             `json:"tasks" yaml:"tasks"`
	ActivityLog []ActivityLogEntry `json:"activityLog" yaml:"activityLog"`
}

// AuthSnapshot is the persisted login under the auth storage key.
type AuthSnapshot struct {
	Email      string `json:"email"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}
