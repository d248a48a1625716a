package domain

import (
	"strings"
	"time"
)

// Priority is the urgency level attached to a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriority reports whether p is one of the four known levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Field limits shared by the validator and the HTTP surface.
const (
	MaxDescriptionLen = 500
	MaxTags           = 20
	MaxTagLen         = 50
)

// Task represents a single to-do item. Instances are treated as immutable
// once they enter an AppState: mutations produce a fresh *Task so older
// snapshots stay consistent.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Clone returns a copy safe to mutate: the tag slice is copied and the due
// date pointer re-boxed.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.DueDate != nil {
		due := *t.DueDate
		cp.DueDate = &due
	}
	if t.Tags != nil {
		cp.Tags = append([]string(nil), t.Tags...)
	}
	return &cp
}

// HasTag reports whether tag appears in the task's tag list.
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// TaskInput is the payload shape for creating a task. Priority defaults to
// medium when empty; DueDate and Tags are optional.
type TaskInput struct {
	Description string     `json:"description"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// TaskUpdate is a partial update: nil fields are left untouched.
// ClearDueDate removes the due date and wins over the DueDate field.
type TaskUpdate struct {
	Description  *string    `json:"description,omitempty"`
	Completed    *bool      `json:"completed,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ClearDueDate bool       `json:"clear_due_date,omitempty"`
	Tags         *[]string  `json:"tags,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u TaskUpdate) Empty() bool {
	return u.Description == nil && u.Completed == nil && u.Priority == nil &&
		u.DueDate == nil && !u.ClearDueDate && u.Tags == nil
}

// NewTask materializes a TaskInput into a Task. The caller supplies the id
// and creation time so construction stays deterministic under test.
func NewTask(id string, in TaskInput, createdAt time.Time) *Task {
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	task := &Task{
		ID:          id,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   createdAt,
		Priority:    priority,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		task.DueDate = &due
	}
	for _, tag := range in.Tags {
		task.Tags = append(task.Tags, strings.TrimSpace(tag))
	}
	return task
}
