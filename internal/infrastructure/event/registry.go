package event

import (
	"slices"
	"sync"

	"github.com/storefront/backend/internal/domain/shared"
)

type subscription struct {
	id      uint64
	handler shared.EventHandler
	types   []string // nil matches every event
}

func (s subscription) matches(eventType string) bool {
	return s.types == nil || slices.Contains(s.types, eventType)
}

// HandlerRegistry keeps subscriptions in registration order. A handler may be
// registered more than once; each registration is cancelled on its own.
type HandlerRegistry struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes handler to eventTypes, or to every event when none are
// given. The returned func removes this registration.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) (cancel func()) {
	var types []string
	if len(eventTypes) > 0 {
		types = slices.Clone(eventTypes)
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, handler: handler, types: types})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

// Handlers returns the handlers matching eventType in registration order
func (r *HandlerRegistry) Handlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []shared.EventHandler
	for _, s := range r.subs {
		if s.matches(eventType) {
			out = append(out, s.handler)
		}
	}
	return out
}

// Len reports the number of live registrations
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

func (r *HandlerRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.id == id })
}
