// Package store owns the live AppState snapshot and the dispatch loop that
// advances it. Actions may be submitted from any goroutine; a single
// consumer applies them strictly in submission order, swaps the snapshot,
// and only then publishes the notices the reducer produced.
package store

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lumatask/core/domain"
	"github.com/lumatask/core/internal/notify"
	"github.com/lumatask/core/usecase/reduce"
)

// ErrClosed is returned by Dispatch after Close.
var ErrClosed = errors.New("store closed")

// Store serializes action application over an immutable state snapshot.
type Store struct {
	reducer *reduce.Reducer
	bus     *notify.Bus
	logger  *zap.Logger

	state atomic.Pointer[domain.AppState]
	queue *fifo

	stopOnce sync.Once
	stopped  chan struct{}
}

// New builds a Store seeded with the initial empty state and starts its
// dispatch loop. A nil bus disables notice publishing; a nil logger is
// replaced with a nop logger.
func New(reducer *reduce.Reducer, bus *notify.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		reducer: reducer,
		bus:     bus,
		logger:  logger,
		queue:   newFIFO(),
		stopped: make(chan struct{}),
	}
	s.state.Store(domain.NewAppState())
	go s.loop()
	return s
}

// Dispatch submits an action. Submission order across goroutines is the
// order in which Dispatch calls win the queue lock; each action is applied
// against the state produced by its predecessor, never a stale snapshot.
func (s *Store) Dispatch(action domain.Action) error {
	if !s.queue.push(action) {
		return ErrClosed
	}
	return nil
}

// Snapshot returns the current state. The returned value is immutable;
// holders of older snapshots keep observing those unchanged.
func (s *Store) Snapshot() *domain.AppState {
	return s.state.Load()
}

// Flush blocks until every action submitted before the call has been
// applied and its notices published.
func (s *Store) Flush() {
	s.queue.waitIdle()
}

// QueueDepth reports the number of actions awaiting application.
func (s *Store) QueueDepth() int {
	return s.queue.depth()
}

// Close stops accepting new actions, drains the ones already submitted,
// and waits for the dispatch loop to exit.
func (s *Store) Close() {
	s.stopOnce.Do(func() {
		s.queue.close()
	})
	<-s.stopped
}

func (s *Store) loop() {
	defer close(s.stopped)
	for {
		action, ok := s.queue.pop()
		if !ok {
			return
		}

		current := s.state.Load()
		next, notices := s.reducer.Apply(current, action)
		s.state.Store(next)

		if next == current {
			s.logger.Debug("action left state unchanged",
				zap.String("action", string(action.Type)))
		}

		// Published only after the swap above, so no listener can see a
		// notice for a state that has not committed yet.
		if s.bus != nil {
			for _, n := range notices {
				s.bus.Publish(n)
			}
		}
		s.queue.done()
	}
}
