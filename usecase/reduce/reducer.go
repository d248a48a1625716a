// Package reduce holds the single state-transition function of the core.
// Apply is total: every action, well-formed or not, yields a next state and
// a possibly empty list of notices. Rejected actions return the input state
// pointer untouched, so callers can detect no-ops by reference.
package reduce

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumatask/core/domain"
	"github.com/lumatask/core/usecase/validate"
)

// Reducer applies actions to immutable AppState snapshots. The clock and id
// generator are injected so transitions are deterministic under test.
type Reducer struct {
	clock  func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option customizes a Reducer.
type Option func(*Reducer)

// WithClock overrides the wall clock used for creation timestamps and
// notice timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Reducer) { r.clock = clock }
}

// WithIDGenerator overrides the id source for new tasks and notices.
func WithIDGenerator(newID func() string) Option {
	return func(r *Reducer) { r.newID = newID }
}

// New builds a Reducer. A nil logger is replaced with a nop logger.
func New(logger *zap.Logger, opts ...Option) *Reducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reducer{
		clock:  time.Now,
		newID:  uuid.NewString,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply validates and applies one action. The returned notices describe
// rejections or degradations; the caller publishes them after committing
// the new state.
func (r *Reducer) Apply(state *domain.AppState, action domain.Action) (*domain.AppState, []domain.Notice) {
	if state == nil {
		state = domain.NewAppState()
	}

	if err := validate.Action(action); err != nil {
		r.logger.Warn("action rejected",
			zap.String("action", string(action.Type)),
			zap.Error(err))
		return state, r.reject(err)
	}

	switch action.Type {
	case domain.ActionAddTask:
		return r.addTask(state, action.Payload.(domain.TaskInput))
	case domain.ActionUpdateTask:
		return r.updateTask(state, action.Payload.(domain.UpdateTaskPayload))
	case domain.ActionDeleteTask:
		return r.deleteTask(state, action.Payload.(string))
	case domain.ActionToggleComplete:
		return r.toggleComplete(state, action.Payload.(string))
	case domain.ActionReorderTasks:
		return r.reorderTasks(state, action.Payload.(domain.ReorderPayload))
	case domain.ActionSetView:
		return r.setView(state, action.Payload.(domain.View))
	case domain.ActionToggleMultiSelect:
		return r.toggleMultiSelect(state)
	case domain.ActionToggleTaskSelection:
		return r.toggleTaskSelection(state, action.Payload.(string))
	case domain.ActionClearSelections:
		return r.clearSelections(state)
	case domain.ActionSetReorderMode:
		return r.setReorderMode(state, action.Payload.(bool))
	case domain.ActionSetEditingTask:
		return r.setEditingTask(state, action.Payload.(string))
	case domain.ActionSetTheme:
		return r.setTheme(state, action.Payload.(map[string]any))
	case domain.ActionBatchDelete:
		return r.batchDelete(state, action.Payload.([]string))
	case domain.ActionBatchComplete:
		return r.batchComplete(state, action.Payload.([]string))
	case domain.ActionSetTagFilter:
		return r.setTagFilter(state, action.Payload.(string))
	}

	// Unreachable: validate.Action rejects unknown types.
	return state, r.reject(domain.ErrInvalidPayload)
}

func (r *Reducer) reject(err error) []domain.Notice {
	return []domain.Notice{domain.NoticeFromError(r.newID(), err, r.clock())}
}

func clone(state *domain.AppState) *domain.AppState {
	next := *state
	return &next
}

func (r *Reducer) addTask(state *domain.AppState, in domain.TaskInput) (*domain.AppState, []domain.Notice) {
	task := domain.NewTask(r.newID(), in, r.clock())

	next := clone(state)
	next.Tasks = make([]*domain.Task, 0, len(state.Tasks)+1)
	next.Tasks = append(next.Tasks, state.Tasks...)
	next.Tasks = append(next.Tasks, task)
	return next, nil
}

func (r *Reducer) updateTask(state *domain.AppState, p domain.UpdateTaskPayload) (*domain.AppState, []domain.Notice) {
	current, idx := state.TaskByID(p.ID)
	if idx < 0 {
		return state, r.reject(domain.ErrTaskNotFound)
	}

	updated := current.Clone()
	u := p.Updates
	if u.Description != nil {
		updated.Description = strings.TrimSpace(*u.Description)
	}
	if u.Completed != nil {
		updated.Completed = *u.Completed
	}
	if u.Priority != nil {
		updated.Priority = *u.Priority
	}
	if u.ClearDueDate {
		updated.DueDate = nil
	} else if u.DueDate != nil {
		due := *u.DueDate
		updated.DueDate = &due
	}
	if u.Tags != nil {
		tags := make([]string, 0, len(*u.Tags))
		for _, tag := range *u.Tags {
			tags = append(tags, strings.TrimSpace(tag))
		}
		updated.Tags = tags
	}

	next := clone(state)
	next.Tasks = replaceAt(state.Tasks, idx, updated)
	return next, nil
}

func (r *Reducer) deleteTask(state *domain.AppState, id string) (*domain.AppState, []domain.Notice) {
	_, idx := state.TaskByID(id)
	if idx < 0 {
		return state, r.reject(domain.ErrTaskNotFound)
	}

	next := clone(state)
	next.Tasks = removeAt(state.Tasks, idx)
	if _, selected := state.UI.SelectedTaskIDs[id]; selected {
		selection := state.UI.CloneSelection()
		delete(selection, id)
		next.UI.SelectedTaskIDs = selection
	}
	if state.UI.EditingTaskID == id {
		next.UI.EditingTaskID = ""
	}
	return next, nil
}

func (r *Reducer) toggleComplete(state *domain.AppState, id string) (*domain.AppState, []domain.Notice) {
	current, idx := state.TaskByID(id)
	if idx < 0 {
		return state, r.reject(domain.ErrTaskNotFound)
	}

	updated := current.Clone()
	updated.Completed = !updated.Completed

	next := clone(state)
	next.Tasks = replaceAt(state.Tasks, idx, updated)
	return next, nil
}

// reorderTasks moves one task with splice semantics: the element is removed
// first and To addresses the shortened list.
func (r *Reducer) reorderTasks(state *domain.AppState, p domain.ReorderPayload) (*domain.AppState, []domain.Notice) {
	length := len(state.Tasks)
	if p.From >= length || p.To >= length {
		return state, r.reject(domain.Errorf(domain.ErrCodeNotFound,
			"cannot reorder: index out of range for %d tasks", length))
	}
	if p.From == p.To {
		return state, nil
	}

	moved := state.Tasks[p.From]
	tasks := make([]*domain.Task, 0, length)
	tasks = append(tasks, state.Tasks[:p.From]...)
	tasks = append(tasks, state.Tasks[p.From+1:]...)
	tasks = append(tasks[:p.To], append([]*domain.Task{moved}, tasks[p.To:]...)...)

	next := clone(state)
	next.Tasks = tasks
	return next, nil
}

func (r *Reducer) setView(state *domain.AppState, v domain.View) (*domain.AppState, []domain.Notice) {
	next := clone(state)
	next.UI.SelectedView = v
	return next, nil
}

// toggleMultiSelect flips the mode. Leaving multi-select always empties the
// selection so the "mode off implies no selection" invariant holds.
func (r *Reducer) toggleMultiSelect(state *domain.AppState) (*domain.AppState, []domain.Notice) {
	next := clone(state)
	next.UI.MultiSelectMode = !state.UI.MultiSelectMode
	if !next.UI.MultiSelectMode {
		next.UI.SelectedTaskIDs = map[string]struct{}{}
	}
	return next, nil
}

// toggleTaskSelection adds or removes one id from the selection. Selecting
// while multi-select is off switches the mode on, keeping the invariant
// that a non-empty selection only exists in multi-select mode.
func (r *Reducer) toggleTaskSelection(state *domain.AppState, id string) (*domain.AppState, []domain.Notice) {
	if !state.HasTask(id) {
		return state, r.reject(domain.ErrTaskNotFound)
	}

	selection := state.UI.CloneSelection()
	if _, selected := selection[id]; selected {
		delete(selection, id)
	} else {
		selection[id] = struct{}{}
	}

	next := clone(state)
	next.UI.SelectedTaskIDs = selection
	if len(selection) > 0 {
		next.UI.MultiSelectMode = true
	}
	return next, nil
}

func (r *Reducer) clearSelections(state *domain.AppState) (*domain.AppState, []domain.Notice) {
	next := clone(state)
	next.UI.SelectedTaskIDs = map[string]struct{}{}
	return next, nil
}

func (r *Reducer) setReorderMode(state *domain.AppState, on bool) (*domain.AppState, []domain.Notice) {
	next := clone(state)
	next.UI.ReorderMode = on
	return next, nil
}

func (r *Reducer) setEditingTask(state *domain.AppState, id string) (*domain.AppState, []domain.Notice) {
	if id != "" && !state.HasTask(id) {
		return state, r.reject(domain.ErrTaskNotFound)
	}
	next := clone(state)
	next.UI.EditingTaskID = id
	return next, nil
}

func (r *Reducer) setTheme(state *domain.AppState, theme map[string]any) (*domain.AppState, []domain.Notice) {
	next := clone(state)
	next.Theme = theme
	return next, nil
}

// batchDelete removes every task whose id appears in the payload. Stale ids
// are dropped silently; only a fully stale payload degrades to a notice.
func (r *Reducer) batchDelete(state *domain.AppState, ids []string) (*domain.AppState, []domain.Notice) {
	doomed := intersect(state, ids)
	if len(doomed) == 0 {
		return state, r.reject(domain.ErrNothingToDelete)
	}

	tasks := make([]*domain.Task, 0, len(state.Tasks)-len(doomed))
	for _, t := range state.Tasks {
		if _, gone := doomed[t.ID]; !gone {
			tasks = append(tasks, t)
		}
	}

	next := clone(state)
	next.Tasks = tasks
	next.UI.SelectedTaskIDs = map[string]struct{}{}
	next.UI.MultiSelectMode = false
	if _, gone := doomed[state.UI.EditingTaskID]; gone {
		next.UI.EditingTaskID = ""
	}
	return next, nil
}

// batchComplete marks every existing task in the payload as done, with the
// same intersection semantics as batchDelete.
func (r *Reducer) batchComplete(state *domain.AppState, ids []string) (*domain.AppState, []domain.Notice) {
	targets := intersect(state, ids)
	if len(targets) == 0 {
		return state, r.reject(domain.ErrNothingToFinish)
	}

	tasks := make([]*domain.Task, len(state.Tasks))
	for i, t := range state.Tasks {
		if _, hit := targets[t.ID]; hit && !t.Completed {
			done := t.Clone()
			done.Completed = true
			tasks[i] = done
			continue
		}
		tasks[i] = t
	}

	next := clone(state)
	next.Tasks = tasks
	next.UI.SelectedTaskIDs = map[string]struct{}{}
	next.UI.MultiSelectMode = false
	return next, nil
}

func (r *Reducer) setTagFilter(state *domain.AppState, tag string) (*domain.AppState, []domain.Notice) {
	next := clone(state)
	next.UI.SelectedTag = tag
	return next, nil
}

func intersect(state *domain.AppState, ids []string) map[string]struct{} {
	requested := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}
	out := make(map[string]struct{})
	for _, t := range state.Tasks {
		if _, hit := requested[t.ID]; hit {
			out[t.ID] = struct{}{}
		}
	}
	return out
}

func replaceAt(tasks []*domain.Task, idx int, task *domain.Task) []*domain.Task {
	out := make([]*domain.Task, len(tasks))
	copy(out, tasks)
	out[idx] = task
	return out
}

func removeAt(tasks []*domain.Task, idx int) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	out = append(out, tasks[idx+1:]...)
	return out
}
