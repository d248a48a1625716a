package selector

import (
	"sort"
	"time"

	"github.com/lumatask/core/domain"
)

// DefaultUpcomingWindowDays bounds the Upcoming view: due strictly after
// today, up to and including the seventh day out.
const DefaultUpcomingWindowDays = 7

// Views bundles the memoized smart-view selectors. Each instance owns its
// caches, so independent consumers (and tests) do not share memo state.
type Views struct {
	clock        func() time.Time
	upcomingDays int

	today        Func[[]*domain.Task]
	upcoming     Func[[]*domain.Task]
	highPriority Func[[]*domain.Task]
	completed    Func[[]*domain.Task]
	byView       Func[[]*domain.Task]
	allTags      Func[[]string]
}

// ViewsOption customizes a Views instance.
type ViewsOption func(*Views)

// WithClock overrides the wall clock used for day-boundary math.
func WithClock(clock func() time.Time) ViewsOption {
	return func(v *Views) { v.clock = clock }
}

// WithUpcomingWindow overrides the number of days the Upcoming view spans.
func WithUpcomingWindow(days int) ViewsOption {
	return func(v *Views) {
		if days > 0 {
			v.upcomingDays = days
		}
	}
}

// NewViews builds the smart-view selector set.
func NewViews(opts ...ViewsOption) *Views {
	v := &Views{
		clock:        time.Now,
		upcomingDays: DefaultUpcomingWindowDays,
	}
	for _, opt := range opts {
		opt(v)
	}

	tasks := Tasks(func(s *domain.AppState) []*domain.Task { return s.Tasks })

	// The day key participates in the memo so a day rollover invalidates
	// the date-bound views even when the task slice is unchanged.
	day := Value(func(*domain.AppState) int64 {
		return localMidnight(v.clock()).Unix()
	})

	v.today = New2(tasks, day, func(list []*domain.Task, dayKey int64) []*domain.Task {
		return filterTasks(list, func(t *domain.Task) bool {
			if t.Completed || t.DueDate == nil {
				return false
			}
			return localMidnight(*t.DueDate).Unix() <= dayKey
		})
	})

	v.upcoming = New2(tasks, day, func(list []*domain.Task, dayKey int64) []*domain.Task {
		horizon := time.Unix(dayKey, 0).AddDate(0, 0, v.upcomingDays).Unix()
		return filterTasks(list, func(t *domain.Task) bool {
			if t.Completed || t.DueDate == nil {
				return false
			}
			due := localMidnight(*t.DueDate).Unix()
			return due > dayKey && due <= horizon
		})
	})

	v.highPriority = New(tasks, func(list []*domain.Task) []*domain.Task {
		return filterTasks(list, func(t *domain.Task) bool {
			return !t.Completed &&
				(t.Priority == domain.PriorityHigh || t.Priority == domain.PriorityCritical)
		})
	})

	v.completed = New(tasks, func(list []*domain.Task) []*domain.Task {
		return filterTasks(list, func(t *domain.Task) bool { return t.Completed })
	})

	type viewKey struct {
		view domain.View
		tag  string
	}
	base := Tasks(func(s *domain.AppState) []*domain.Task {
		switch s.UI.SelectedView {
		case domain.ViewToday:
			return v.today(s)
		case domain.ViewUpcoming:
			return v.upcoming(s)
		case domain.ViewPriority:
			return v.highPriority(s)
		case domain.ViewCompleted:
			return v.completed(s)
		}
		return s.Tasks
	})
	key := Value(func(s *domain.AppState) viewKey {
		return viewKey{view: s.UI.SelectedView, tag: s.UI.SelectedTag}
	})
	v.byView = New2(key, base, func(k viewKey, list []*domain.Task) []*domain.Task {
		if k.tag == "" {
			return list
		}
		return filterTasks(list, func(t *domain.Task) bool { return t.HasTag(k.tag) })
	})

	v.allTags = New(tasks, func(list []*domain.Task) []string {
		seen := map[string]struct{}{}
		var out []string
		for _, t := range list {
			for _, tag := range t.Tags {
				if _, dup := seen[tag]; dup {
					continue
				}
				seen[tag] = struct{}{}
				out = append(out, tag)
			}
		}
		sort.Strings(out)
		return out
	})

	return v
}

// Today returns tasks due today or overdue, excluding completed ones.
func (v *Views) Today(s *domain.AppState) []*domain.Task { return v.today(s) }

// Upcoming returns tasks due after today and within the upcoming window.
func (v *Views) Upcoming(s *domain.AppState) []*domain.Task { return v.upcoming(s) }

// HighPriority returns open tasks at high or critical priority.
func (v *Views) HighPriority(s *domain.AppState) []*domain.Task { return v.highPriority(s) }

// Completed returns completed tasks.
func (v *Views) Completed(s *domain.AppState) []*domain.Task { return v.completed(s) }

// All returns the full task list unchanged.
func (v *Views) All(s *domain.AppState) []*domain.Task { return s.Tasks }

// ByView dispatches on the selected view, then layers the selected tag
// filter on top when one is set.
func (v *Views) ByView(s *domain.AppState) []*domain.Task { return v.byView(s) }

// AllTags returns every tag on every task, deduplicated and sorted.
func (v *Views) AllTags(s *domain.AppState) []string { return v.allTags(s) }

// ForView resolves a view name against the same memoized selectors that
// ByView uses, ignoring the snapshot's own selected view.
func (v *Views) ForView(s *domain.AppState, view domain.View) []*domain.Task {
	switch view {
	case domain.ViewToday:
		return v.today(s)
	case domain.ViewUpcoming:
		return v.upcoming(s)
	case domain.ViewPriority:
		return v.highPriority(s)
	case domain.ViewCompleted:
		return v.completed(s)
	}
	return s.Tasks
}

func filterTasks(list []*domain.Task, keep func(*domain.Task) bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(list))
	for _, t := range list {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func localMidnight(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
