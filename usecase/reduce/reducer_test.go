package reduce

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumatask/core/domain"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 0, 0, time.Local)

func testReducer() *Reducer {
	n := 0
	return New(nil,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func seed(t *testing.T, r *Reducer, descriptions ...string) *domain.AppState {
	t.Helper()
	state := domain.NewAppState()
	for _, desc := range descriptions {
		var notices []domain.Notice
		state, notices = r.Apply(state, domain.AddTask(domain.TaskInput{Description: desc}))
		require.Empty(t, notices)
	}
	return state
}

func TestAddTask(t *testing.T) {
	r := testReducer()
	state := domain.NewAppState()

	next, notices := r.Apply(state, domain.AddTask(domain.TaskInput{Description: "  Buy milk  "}))

	require.Empty(t, notices)
	require.Len(t, next.Tasks, 1)
	task := next.Tasks[0]
	assert.Equal(t, "Buy milk", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, testNow, task.CreatedAt)
	assert.NotEmpty(t, task.ID)
	assert.Empty(t, state.Tasks, "input state must not be mutated")
}

func TestAddTask_UniqueIDs(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b", "c", "d")

	seen := map[string]bool{}
	for _, task := range state.Tasks {
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestAddTask_EmptyDescriptionRejected(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "keep me")

	next, notices := r.Apply(state, domain.AddTask(domain.TaskInput{Description: "   "}))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityError, notices[0].Severity)
}

func TestUpdateTask(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "original", "untouched")

	desc := "rewritten"
	priority := domain.PriorityCritical
	next, notices := r.Apply(state, domain.UpdateTask(state.Tasks[0].ID, domain.TaskUpdate{
		Description: &desc,
		Priority:    &priority,
	}))

	require.Empty(t, notices)
	assert.Equal(t, "rewritten", next.Tasks[0].Description)
	assert.Equal(t, domain.PriorityCritical, next.Tasks[0].Priority)
	assert.Equal(t, state.Tasks[0].CreatedAt, next.Tasks[0].CreatedAt)
	assert.Same(t, state.Tasks[1], next.Tasks[1], "unchanged tasks are shared")
	assert.Equal(t, "original", state.Tasks[0].Description, "input task must not be mutated")
}

func TestUpdateTask_ClearDueDate(t *testing.T) {
	r := testReducer()
	due := testNow.Add(48 * time.Hour)
	state, notices := r.Apply(domain.NewAppState(),
		domain.AddTask(domain.TaskInput{Description: "dated", DueDate: &due}))
	require.Empty(t, notices)
	require.NotNil(t, state.Tasks[0].DueDate)

	next, notices := r.Apply(state, domain.UpdateTask(state.Tasks[0].ID,
		domain.TaskUpdate{ClearDueDate: true}))

	require.Empty(t, notices)
	assert.Nil(t, next.Tasks[0].DueDate)
}

func TestUpdateTask_NotFound(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	desc := "nope"
	next, notices := r.Apply(state, domain.UpdateTask("ghost", domain.TaskUpdate{Description: &desc}))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityWarning, notices[0].Severity)
}

func TestDeleteTask(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b")
	id := state.Tasks[0].ID

	next, notices := r.Apply(state, domain.DeleteTask(id))

	require.Empty(t, notices)
	require.Len(t, next.Tasks, 1)
	assert.False(t, next.HasTask(id))
	assert.Len(t, state.Tasks, 2)
}

func TestDeleteTask_PrunesSelectionAndEditing(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b")
	id := state.Tasks[0].ID

	state, _ = r.Apply(state, domain.ToggleTaskSelection(id))
	state, _ = r.Apply(state, domain.SetEditingTask(id))
	require.Contains(t, state.UI.SelectedTaskIDs, id)
	require.Equal(t, id, state.UI.EditingTaskID)

	next, notices := r.Apply(state, domain.DeleteTask(id))

	require.Empty(t, notices)
	assert.NotContains(t, next.UI.SelectedTaskIDs, id)
	assert.Empty(t, next.UI.EditingTaskID)
}

func TestDeleteTask_NotFound(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.DeleteTask("ghost"))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityWarning, notices[0].Severity)
	assert.Equal(t, "task not found", notices[0].Message)
}

func TestToggleComplete_RoundTrip(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "flip me")
	id := state.Tasks[0].ID

	once, notices := r.Apply(state, domain.ToggleComplete(id))
	require.Empty(t, notices)
	assert.True(t, once.Tasks[0].Completed)

	twice, notices := r.Apply(once, domain.ToggleComplete(id))
	require.Empty(t, notices)
	assert.False(t, twice.Tasks[0].Completed)
	assert.Equal(t, state.Tasks[0].Description, twice.Tasks[0].Description)
	assert.Equal(t, state.Tasks[0].CreatedAt, twice.Tasks[0].CreatedAt)
	assert.Equal(t, state.Tasks[0].Priority, twice.Tasks[0].Priority)
}

func TestToggleComplete_NotFound(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.ToggleComplete("ghost"))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
}

func TestReorderTasks(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b", "c", "d")

	next, notices := r.Apply(state, domain.ReorderTasks(0, 2))

	require.Empty(t, notices)
	got := make([]string, 0, 4)
	for _, task := range next.Tasks {
		got = append(got, task.Description)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, got)
}

func TestReorderTasks_PermutationOnly(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b", "c", "d", "e")

	for from := 0; from < 5; from++ {
		for to := 0; to < 5; to++ {
			next, notices := r.Apply(state, domain.ReorderTasks(from, to))
			require.Empty(t, notices)
			require.Len(t, next.Tasks, 5)

			ids := map[string]bool{}
			for _, task := range next.Tasks {
				ids[task.ID] = true
			}
			for _, task := range state.Tasks {
				assert.True(t, ids[task.ID], "reorder(%d,%d) lost task %s", from, to, task.ID)
			}
		}
	}
}

func TestReorderTasks_OutOfRange(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b")

	next, notices := r.Apply(state, domain.ReorderTasks(0, 5))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityWarning, notices[0].Severity)
}

func TestSetView(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.SetView(domain.ViewToday))

	require.Empty(t, notices)
	assert.Equal(t, domain.ViewToday, next.UI.SelectedView)
}

func TestSetView_UnknownRejected(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.SetView(domain.View("someday")))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityError, notices[0].Severity)
}

func TestToggleMultiSelect_ExitClearsSelection(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b")

	state, _ = r.Apply(state, domain.ToggleMultiSelect())
	require.True(t, state.UI.MultiSelectMode)

	state, _ = r.Apply(state, domain.ToggleTaskSelection(state.Tasks[0].ID))
	state, _ = r.Apply(state, domain.ToggleTaskSelection(state.Tasks[1].ID))
	require.Len(t, state.UI.SelectedTaskIDs, 2)

	next, notices := r.Apply(state, domain.ToggleMultiSelect())

	require.Empty(t, notices)
	assert.False(t, next.UI.MultiSelectMode)
	assert.Empty(t, next.UI.SelectedTaskIDs)
}

func TestToggleTaskSelection(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")
	id := state.Tasks[0].ID

	selected, notices := r.Apply(state, domain.ToggleTaskSelection(id))
	require.Empty(t, notices)
	assert.Contains(t, selected.UI.SelectedTaskIDs, id)
	assert.True(t, selected.UI.MultiSelectMode, "selecting implies multi-select mode")

	deselected, notices := r.Apply(selected, domain.ToggleTaskSelection(id))
	require.Empty(t, notices)
	assert.NotContains(t, deselected.UI.SelectedTaskIDs, id)
}

func TestToggleTaskSelection_NotFound(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.ToggleTaskSelection("ghost"))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
}

func TestClearSelections(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b")
	state, _ = r.Apply(state, domain.ToggleTaskSelection(state.Tasks[0].ID))

	next, notices := r.Apply(state, domain.ClearSelections())

	require.Empty(t, notices)
	assert.Empty(t, next.UI.SelectedTaskIDs)
}

func TestSetEditingTask(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")
	id := state.Tasks[0].ID

	editing, notices := r.Apply(state, domain.SetEditingTask(id))
	require.Empty(t, notices)
	assert.Equal(t, id, editing.UI.EditingTaskID)

	cleared, notices := r.Apply(editing, domain.SetEditingTask(""))
	require.Empty(t, notices)
	assert.Empty(t, cleared.UI.EditingTaskID)

	same, notices := r.Apply(cleared, domain.SetEditingTask("ghost"))
	assert.Same(t, cleared, same)
	require.Len(t, notices, 1)
}

func TestSetTheme(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	theme := map[string]any{"accent": "#7f5af0", "glass": true}
	next, notices := r.Apply(state, domain.SetTheme(theme))

	require.Empty(t, notices)
	assert.Equal(t, theme, next.Theme)
	assert.Len(t, next.Tasks, 1)
}

func TestBatchDelete_Intersection(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a", "b", "c")
	ids := []string{state.Tasks[0].ID, state.Tasks[1].ID, "ghost"}

	next, notices := r.Apply(state, domain.BatchDelete(ids))

	require.Empty(t, notices)
	require.Len(t, next.Tasks, 1)
	assert.Equal(t, "c", next.Tasks[0].Description)
	assert.False(t, next.UI.MultiSelectMode)
	assert.Empty(t, next.UI.SelectedTaskIDs)
}

func TestBatchDelete_EmptyIntersection(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.BatchDelete([]string{"ghost", "phantom"}))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityInfo, notices[0].Severity)
	assert.Equal(t, "no tasks to delete", notices[0].Message)
}

func TestBatchComplete(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "one", "two", "three")
	state, _ = r.Apply(state, domain.ToggleTaskSelection(state.Tasks[0].ID))
	ids := []string{state.Tasks[0].ID, state.Tasks[1].ID}

	next, notices := r.Apply(state, domain.BatchComplete(ids))

	require.Empty(t, notices)
	assert.True(t, next.Tasks[0].Completed)
	assert.True(t, next.Tasks[1].Completed)
	assert.False(t, next.Tasks[2].Completed)
	assert.Same(t, state.Tasks[2], next.Tasks[2], "untargeted task is shared")
	assert.False(t, next.UI.MultiSelectMode)
	assert.Empty(t, next.UI.SelectedTaskIDs)
}

func TestBatchComplete_EmptyIntersection(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.BatchComplete([]string{"ghost"}))

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityInfo, notices[0].Severity)
}

func TestSetTagFilter(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.SetTagFilter("errands"))
	require.Empty(t, notices)
	assert.Equal(t, "errands", next.UI.SelectedTag)

	cleared, notices := r.Apply(next, domain.SetTagFilter(""))
	require.Empty(t, notices)
	assert.Empty(t, cleared.UI.SelectedTag)
}

func TestUnknownActionType(t *testing.T) {
	r := testReducer()
	state := seed(t, r, "a")

	next, notices := r.Apply(state, domain.Action{Type: "EXPLODE"})

	assert.Same(t, state, next)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityError, notices[0].Severity)
}

func TestScenario_AddToggleDelete(t *testing.T) {
	r := testReducer()
	state := domain.NewAppState()

	state, notices := r.Apply(state, domain.AddTask(domain.TaskInput{Description: "Buy milk"}))
	require.Empty(t, notices)
	require.Len(t, state.Tasks, 1)
	assert.False(t, state.Tasks[0].Completed)
	id := state.Tasks[0].ID

	state, notices = r.Apply(state, domain.ToggleComplete(id))
	require.Empty(t, notices)
	assert.True(t, state.Tasks[0].Completed)

	state, notices = r.Apply(state, domain.DeleteTask(id))
	require.Empty(t, notices)
	assert.Empty(t, state.Tasks)
}
