package domain

// View names a smart view over the task collection.
type View string

const (
	ViewAll       View = "all"
	ViewToday     View = "today"
	ViewUpcoming  View = "upcoming"
	ViewPriority  View = "priority"
	ViewCompleted View = "completed"
)

// ValidView reports whether v is one of the known views.
func ValidView(v View) bool {
	switch v {
	case ViewAll, ViewToday, ViewUpcoming, ViewPriority, ViewCompleted:
		return true
	}
	return false
}

// UIState is the transient interaction mode. It is part of the snapshot but
// never persisted anywhere.
type UIState struct {
	SelectedView    View                `json:"selected_view"`
	MultiSelectMode bool                `json:"multi_select_mode"`
	SelectedTaskIDs map[string]struct{} `json:"selected_task_ids"`
	ReorderMode     bool                `json:"reorder_mode"`
	EditingTaskID   string              `json:"editing_task_id,omitempty"`
	SelectedTag     string              `json:"selected_tag,omitempty"`
}

// CloneSelection returns a copy of the selected-id set, never nil.
func (u UIState) CloneSelection() map[string]struct{} {
	out := make(map[string]struct{}, len(u.SelectedTaskIDs))
	for id := range u.SelectedTaskIDs {
		out[id] = struct{}{}
	}
	return out
}

// AppState is the aggregate root. Every reducer step produces a fresh
// AppState value; tasks that did not change are shared by pointer between
// consecutive snapshots. Theme is opaque pass-through owned by the shell.
type AppState struct {
	Tasks []*Task        `json:"tasks"`
	UI    UIState        `json:"ui"`
	Theme map[string]any `json:"theme,omitempty"`
}

// NewAppState returns the initial snapshot: no tasks, default UI mode.
func NewAppState() *AppState {
	return &AppState{
		Tasks: []*Task{},
		UI: UIState{
			SelectedView:    ViewAll,
			SelectedTaskIDs: map[string]struct{}{},
		},
	}
}

// TaskByID returns the task with the given id and its position, or (nil, -1).
func (s *AppState) TaskByID(id string) (*Task, int) {
	for i, t := range s.Tasks {
		if t.ID == id {
			return t, i
		}
	}
	return nil, -1
}

// HasTask reports whether a task with the given id exists.
func (s *AppState) HasTask(id string) bool {
	_, i := s.TaskByID(id)
	return i >= 0
}
