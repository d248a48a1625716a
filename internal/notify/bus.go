// Package notify carries user-facing notices from the state core to
// whatever surfaces display them. The bus is an explicit instance owned by
// the application root and injected where needed; there is no package-level
// listener list, so tests never leak subscribers into each other.
package notify

import (
	"sync"

	"github.com/lumatask/core/domain"
)

// Listener receives published notices.
type Listener func(domain.Notice)

// Bus is an in-process publish/subscribe channel for notices.
type Bus struct {
	mu        sync.RWMutex
	nextToken int
	listeners map[int]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: map[int]Listener{}}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	token := b.nextToken
	b.nextToken++
	b.listeners[token] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, token)
		b.mu.Unlock()
	}
}

// Publish delivers the notice to every current subscriber, synchronously
// and in no particular order.
func (b *Bus) Publish(n domain.Notice) {
	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(n)
	}
}

// Len reports the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
