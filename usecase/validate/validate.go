// Package validate performs structural checks on incoming actions before
// they reach the reducer. Checks here are purely shape- and field-level;
// referential questions ("does this id exist?") belong to the reducer,
// which answers them against the live snapshot at apply time.
package validate

import (
	"strings"
	"time"

	"github.com/lumatask/core/domain"
)

// Action checks the payload shape for the given action type. It returns nil
// when the action is structurally sound and a classified domain error
// otherwise. It never panics, whatever the payload holds.
func Action(action domain.Action) error {
	switch action.Type {
	case domain.ActionAddTask:
		in, ok := action.Payload.(domain.TaskInput)
		if !ok {
			return domain.NewError(domain.ErrCodeInvalid, "ADD_TASK payload must be a task input")
		}
		return taskInput(in)

	case domain.ActionUpdateTask:
		p, ok := action.Payload.(domain.UpdateTaskPayload)
		if !ok {
			return domain.NewError(domain.ErrCodeInvalid, "UPDATE_TASK payload must carry a task id and updates")
		}
		if p.ID == "" {
			return domain.NewError(domain.ErrCodeInvalid, "task id is required")
		}
		return taskUpdate(p.Updates)

	case domain.ActionDeleteTask, domain.ActionToggleComplete, domain.ActionToggleTaskSelection:
		id, ok := action.Payload.(string)
		if !ok || id == "" {
			return domain.Errorf(domain.ErrCodeInvalid, "%s payload must be a task id", action.Type)
		}
		return nil

	case domain.ActionReorderTasks:
		p, ok := action.Payload.(domain.ReorderPayload)
		if !ok {
			return domain.NewError(domain.ErrCodeInvalid, "REORDER_TASKS payload must carry from/to indices")
		}
		if p.From < 0 || p.To < 0 {
			return domain.NewError(domain.ErrCodeInvalid, "reorder indices must be non-negative")
		}
		return nil

	case domain.ActionSetView:
		v, ok := action.Payload.(domain.View)
		if !ok || !domain.ValidView(v) {
			return domain.NewError(domain.ErrCodeInvalid, "SET_VIEW payload must be a known view")
		}
		return nil

	case domain.ActionToggleMultiSelect, domain.ActionClearSelections:
		return nil

	case domain.ActionSetReorderMode:
		if _, ok := action.Payload.(bool); !ok {
			return domain.NewError(domain.ErrCodeInvalid, "SET_REORDER_MODE payload must be a boolean")
		}
		return nil

	case domain.ActionSetEditingTask:
		if _, ok := action.Payload.(string); !ok {
			return domain.NewError(domain.ErrCodeInvalid, "SET_EDITING_TASK payload must be a task id or empty")
		}
		return nil

	case domain.ActionSetTheme:
		theme, ok := action.Payload.(map[string]any)
		if !ok || theme == nil {
			return domain.NewError(domain.ErrCodeInvalid, "SET_THEME payload must be a theme object")
		}
		return nil

	case domain.ActionBatchDelete, domain.ActionBatchComplete:
		ids, ok := action.Payload.([]string)
		if !ok {
			return domain.Errorf(domain.ErrCodeInvalid, "%s payload must be a list of task ids", action.Type)
		}
		for _, id := range ids {
			if id == "" {
				return domain.Errorf(domain.ErrCodeInvalid, "%s payload contains an empty task id", action.Type)
			}
		}
		return nil

	case domain.ActionSetTagFilter:
		if _, ok := action.Payload.(string); !ok {
			return domain.NewError(domain.ErrCodeInvalid, "SET_TAG_FILTER payload must be a tag or empty")
		}
		return nil
	}

	return domain.Errorf(domain.ErrCodeInvalid, "unknown action type %q", action.Type)
}

func taskInput(in domain.TaskInput) error {
	if err := description(in.Description); err != nil {
		return err
	}
	if in.Priority != "" && !domain.ValidPriority(in.Priority) {
		return domain.Errorf(domain.ErrCodeInvalid, "unknown priority %q", in.Priority)
	}
	if err := dueDate(in.DueDate); err != nil {
		return err
	}
	return tags(in.Tags)
}

func taskUpdate(u domain.TaskUpdate) error {
	if u.Description != nil {
		if err := description(*u.Description); err != nil {
			return err
		}
	}
	if u.Priority != nil && !domain.ValidPriority(*u.Priority) {
		return domain.Errorf(domain.ErrCodeInvalid, "unknown priority %q", *u.Priority)
	}
	if err := dueDate(u.DueDate); err != nil {
		return err
	}
	if u.Tags != nil {
		return tags(*u.Tags)
	}
	return nil
}

func description(desc string) error {
	trimmed := strings.TrimSpace(desc)
	if trimmed == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task description cannot be empty")
	}
	if len(trimmed) > domain.MaxDescriptionLen {
		return domain.Errorf(domain.ErrCodeInvalid, "task description exceeds %d characters", domain.MaxDescriptionLen)
	}
	return nil
}

func dueDate(due *time.Time) error {
	if due == nil {
		return nil
	}
	if due.IsZero() || due.Unix() < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "due date must be a valid timestamp")
	}
	return nil
}

func tags(list []string) error {
	if len(list) > domain.MaxTags {
		return domain.Errorf(domain.ErrCodeInvalid, "at most %d tags are allowed", domain.MaxTags)
	}
	for _, tag := range list {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return domain.NewError(domain.ErrCodeInvalid, "tags cannot be empty")
		}
		if len(trimmed) > domain.MaxTagLen {
			return domain.Errorf(domain.ErrCodeInvalid, "tag exceeds %d characters", domain.MaxTagLen)
		}
	}
	return nil
}
