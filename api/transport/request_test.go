package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumatask/core/domain"
)

func request(t *testing.T, actionType, payload string) ActionRequest {
	t.Helper()
	req := ActionRequest{Type: actionType}
	if payload != "" {
		req.Payload = json.RawMessage(payload)
	}
	return req
}

func TestActionRequest_AddTask(t *testing.T) {
	due := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	req := request(t, "ADD_TASK", `{
		"description": "Buy milk",
		"priority": "high",
		"due_date": `+jsonMillis(due)+`,
		"tags": ["errands"]
	}`)

	action, err := req.Action()
	require.NoError(t, err)
	assert.Equal(t, domain.ActionAddTask, action.Type)

	in, ok := action.Payload.(domain.TaskInput)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", in.Description)
	assert.Equal(t, domain.PriorityHigh, in.Priority)
	require.NotNil(t, in.DueDate)
	assert.True(t, in.DueDate.Equal(due))
	assert.Equal(t, []string{"errands"}, in.Tags)
}

func TestActionRequest_UpdateTaskClearDueDate(t *testing.T) {
	req := request(t, "UPDATE_TASK", `{"id":"t-1","updates":{"clear_due_date":true}}`)

	action, err := req.Action()
	require.NoError(t, err)

	payload, ok := action.Payload.(domain.UpdateTaskPayload)
	require.True(t, ok)
	assert.Equal(t, "t-1", payload.ID)
	assert.True(t, payload.Updates.ClearDueDate)
	assert.Nil(t, payload.Updates.DueDate)
}

func TestActionRequest_IDActions(t *testing.T) {
	for _, actionType := range []string{"DELETE_TASK", "TOGGLE_COMPLETE", "TOGGLE_TASK_SELECTION", "SET_EDITING_TASK"} {
		action, err := request(t, actionType, `{"id":"t-9"}`).Action()
		require.NoError(t, err, actionType)
		assert.Equal(t, "t-9", action.Payload)
	}
}

func TestActionRequest_Batch(t *testing.T) {
	action, err := request(t, "BATCH_DELETE", `{"ids":["a","b"]}`).Action()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, action.Payload)
}

func TestActionRequest_PayloadFree(t *testing.T) {
	action, err := request(t, "TOGGLE_MULTI_SELECT", "").Action()
	require.NoError(t, err)
	assert.Equal(t, domain.ActionToggleMultiSelect, action.Type)
	assert.Nil(t, action.Payload)
}

func TestActionRequest_UnknownType(t *testing.T) {
	_, err := request(t, "FROBNICATE", `{}`).Action()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestActionRequest_MalformedPayload(t *testing.T) {
	_, err := request(t, "ADD_TASK", `{"description": 12`).Action()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = request(t, "REORDER_TASKS", "").Action()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func jsonMillis(t time.Time) string {
	out, _ := json.Marshal(t.UnixMilli())
	return string(out)
}
