package domain

// ActionType tags one of the closed set of state transitions. The set of
// types plus their payload shapes is the entire write API of the core.
type ActionType string

const (
	ActionAddTask             ActionType = "ADD_TASK"
	ActionUpdateTask          ActionType = "UPDATE_TASK"
	ActionDeleteTask          ActionType = "DELETE_TASK"
	ActionToggleComplete      ActionType = "TOGGLE_COMPLETE"
	ActionReorderTasks        ActionType = "REORDER_TASKS"
	ActionSetView             ActionType = "SET_VIEW"
	ActionToggleMultiSelect   ActionType = "TOGGLE_MULTI_SELECT"
	ActionToggleTaskSelection ActionType = "TOGGLE_TASK_SELECTION"
	ActionClearSelections     ActionType = "CLEAR_SELECTIONS"
	ActionSetReorderMode      ActionType = "SET_REORDER_MODE"
	ActionSetEditingTask      ActionType = "SET_EDITING_TASK"
	ActionSetTheme            ActionType = "SET_THEME"
	ActionBatchDelete         ActionType = "BATCH_DELETE"
	ActionBatchComplete       ActionType = "BATCH_COMPLETE"
	ActionSetTagFilter        ActionType = "SET_TAG_FILTER"
)

// Action is a tagged transition request. Payload carries the per-type shape
// documented on the constructors below; the validator checks it structurally
// before the reducer ever looks at it.
type Action struct {
	Type    ActionType
	Payload any
}

// UpdateTaskPayload carries a partial update for one task.
type UpdateTaskPayload struct {
	ID      string     `json:"id"`
	Updates TaskUpdate `json:"updates"`
}

// ReorderPayload moves the task at From to position To. To is interpreted
// after the removal, i.e. splice semantics.
type ReorderPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func AddTask(in TaskInput) Action {
	return Action{Type: ActionAddTask, Payload: in}
}

func UpdateTask(id string, updates TaskUpdate) Action {
	return Action{Type: ActionUpdateTask, Payload: UpdateTaskPayload{ID: id, Updates: updates}}
}

func DeleteTask(id string) Action {
	return Action{Type: ActionDeleteTask, Payload: id}
}

func ToggleComplete(id string) Action {
	return Action{Type: ActionToggleComplete, Payload: id}
}

func ReorderTasks(from, to int) Action {
	return Action{Type: ActionReorderTasks, Payload: ReorderPayload{From: from, To: to}}
}

func SetView(v View) Action {
	return Action{Type: ActionSetView, Payload: v}
}

func ToggleMultiSelect() Action {
	return Action{Type: ActionToggleMultiSelect}
}

func ToggleTaskSelection(id string) Action {
	return Action{Type: ActionToggleTaskSelection, Payload: id}
}

func ClearSelections() Action {
	return Action{Type: ActionClearSelections}
}

func SetReorderMode(on bool) Action {
	return Action{Type: ActionSetReorderMode, Payload: on}
}

// SetEditingTask marks a task as being edited inline. An empty id clears
// the editing state.
func SetEditingTask(id string) Action {
	return Action{Type: ActionSetEditingTask, Payload: id}
}

func SetTheme(theme map[string]any) Action {
	return Action{Type: ActionSetTheme, Payload: theme}
}

func BatchDelete(ids []string) Action {
	return Action{Type: ActionBatchDelete, Payload: ids}
}

func BatchComplete(ids []string) Action {
	return Action{Type: ActionBatchComplete, Payload: ids}
}

// SetTagFilter layers a tag filter on top of the selected view. An empty
// tag clears the filter.
func SetTagFilter(tag string) Action {
	return Action{Type: ActionSetTagFilter, Payload: tag}
}
