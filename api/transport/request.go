package transport

import (
	"encoding/json"
	"time"

	"github.com/lumatask/core/domain"
)

// ActionRequest is the wire shape for submitting an action. Payload is
// decoded per action type; due dates travel as epoch milliseconds, the
// format the mobile client uses.
type ActionRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type taskInputBody struct {
	Description string   `json:"description"`
	Priority    string   `json:"priority,omitempty"`
	DueDateMS   *int64   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type taskUpdateBody struct {
	Description  *string   `json:"description,omitempty"`
	Completed    *bool     `json:"completed,omitempty"`
	Priority     *string   `json:"priority,omitempty"`
	DueDateMS    *int64    `json:"due_date,omitempty"`
	ClearDueDate bool      `json:"clear_due_date,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
}

type idBody struct {
	ID string `json:"id"`
}

type updateBody struct {
	ID      string         `json:"id"`
	Updates taskUpdateBody `json:"updates"`
}

type reorderBody struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type viewBody struct {
	View string `json:"view"`
}

type enabledBody struct {
	Enabled bool `json:"enabled"`
}

type idsBody struct {
	IDs []string `json:"ids"`
}

type tagBody struct {
	Tag string `json:"tag"`
}

// Action converts the request into a typed domain action. Decoding failures
// come back as INVALID domain errors; field-level rules stay with the
// validator.
func (r ActionRequest) Action() (domain.Action, error) {
	actionType := domain.ActionType(r.Type)

	switch actionType {
	case domain.ActionAddTask:
		var body taskInputBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.AddTask(domain.TaskInput{
			Description: body.Description,
			Priority:    domain.Priority(body.Priority),
			DueDate:     msToTime(body.DueDateMS),
			Tags:        body.Tags,
		}), nil

	case domain.ActionUpdateTask:
		var body updateBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		updates := domain.TaskUpdate{
			Description:  body.Updates.Description,
			Completed:    body.Updates.Completed,
			DueDate:      msToTime(body.Updates.DueDateMS),
			ClearDueDate: body.Updates.ClearDueDate,
			Tags:         body.Updates.Tags,
		}
		if body.Updates.Priority != nil {
			priority := domain.Priority(*body.Updates.Priority)
			updates.Priority = &priority
		}
		return domain.UpdateTask(body.ID, updates), nil

	case domain.ActionDeleteTask, domain.ActionToggleComplete,
		domain.ActionToggleTaskSelection, domain.ActionSetEditingTask:
		var body idBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.Action{Type: actionType, Payload: body.ID}, nil

	case domain.ActionReorderTasks:
		var body reorderBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.ReorderTasks(body.From, body.To), nil

	case domain.ActionSetView:
		var body viewBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.SetView(domain.View(body.View)), nil

	case domain.ActionToggleMultiSelect:
		return domain.ToggleMultiSelect(), nil

	case domain.ActionClearSelections:
		return domain.ClearSelections(), nil

	case domain.ActionSetReorderMode:
		var body enabledBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.SetReorderMode(body.Enabled), nil

	case domain.ActionSetTheme:
		var theme map[string]any
		if err := r.decode(&theme); err != nil {
			return domain.Action{}, err
		}
		return domain.SetTheme(theme), nil

	case domain.ActionBatchDelete, domain.ActionBatchComplete:
		var body idsBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.Action{Type: actionType, Payload: body.IDs}, nil

	case domain.ActionSetTagFilter:
		var body tagBody
		if err := r.decode(&body); err != nil {
			return domain.Action{}, err
		}
		return domain.SetTagFilter(body.Tag), nil
	}

	return domain.Action{}, domain.Errorf(domain.ErrCodeInvalid, "unknown action type %q", r.Type)
}

func (r ActionRequest) decode(into any) error {
	if len(r.Payload) == 0 {
		return domain.Errorf(domain.ErrCodeInvalid, "%s requires a payload", r.Type)
	}
	if err := json.Unmarshal(r.Payload, into); err != nil {
		return domain.Errorf(domain.ErrCodeInvalid, "malformed %s payload", r.Type)
	}
	return nil
}

func msToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}
