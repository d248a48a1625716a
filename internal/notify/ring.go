package notify

import (
	"sync"

	"github.com/lumatask/core/domain"
)

// Ring keeps the most recent notices for surfaces that poll instead of
// subscribing, like the dev server's notices endpoint.
type Ring struct {
	mu    sync.Mutex
	cap   int
	items []domain.Notice
}

// NewRing creates a ring holding at most capacity notices.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 100
	}
	return &Ring{cap: capacity}
}

// Add appends a notice, evicting the oldest once full. Its signature
// matches Listener so a ring can subscribe to a Bus directly.
func (r *Ring) Add(n domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	if len(r.items) > r.cap {
		r.items = r.items[len(r.items)-r.cap:]
	}
}

// Recent returns the retained notices, oldest first.
func (r *Ring) Recent() []domain.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notice(nil), r.items...)
}
