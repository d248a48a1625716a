package store

import (
	"sync"

	"github.com/lumatask/core/domain"
)

// fifo is an unbounded action queue with one consumer. Submission order is
// preserved exactly; the consumer owns the pop-and-apply sequence, so no
// other goroutine can observe an action between pop and apply.
type fifo struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	idle     *sync.Cond
	items    []domain.Action
	busy     bool
	closed   bool
}

func newFIFO() *fifo {
	q := &fifo{}
	q.nonEmpty = sync.NewCond(&q.mu)
	q.idle = sync.NewCond(&q.mu)
	return q
}

// push appends an action. It reports false once the queue is closed.
func (q *fifo) push(a domain.Action) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, a)
	q.nonEmpty.Signal()
	return true
}

// pop blocks until an action is available or the queue is closed and
// drained. Actions enqueued before close are still delivered.
func (q *fifo) pop() (domain.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.nonEmpty.Wait()
	}
	if len(q.items) == 0 {
		return domain.Action{}, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	q.busy = true
	return a, true
}

// done marks the popped action as fully applied.
func (q *fifo) done() {
	q.mu.Lock()
	q.busy = false
	if len(q.items) == 0 {
		q.idle.Broadcast()
	}
	q.mu.Unlock()
}

// waitIdle blocks until every enqueued action has been applied.
func (q *fifo) waitIdle() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) > 0 || q.busy {
		q.idle.Wait()
	}
}

// close stops accepting new actions and wakes the consumer.
func (q *fifo) close() {
	q.mu.Lock()
	q.closed = true
	q.nonEmpty.Broadcast()
	q.idle.Broadcast()
	q.mu.Unlock()
}

// depth reports the number of pending actions.
func (q *fifo) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	if q.busy {
		n++
	}
	return n
}
