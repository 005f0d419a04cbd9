package state

import (
	"sync"

	"github.com/promptdrive/pd/internal/model"
)

// Update transforms one state snapshot into the next. It must be pure:
// committed maps are replaced, never mutated in place.
type Update func(AppState) AppState

// Patch is a shallow merge of top-level state keys. Nil fields are left
// untouched.
type Patch struct {
	User         *model.User
	Profile      *model.Profile
	Subscription *model.Subscription
	UI           *UIState
	Data         *DataState
}

// Container is the single source of truth for the client. All mutation goes
// through Set or Apply; listeners are notified synchronously after every
// commit with the fully merged snapshot.
type Container struct {
	mu        sync.Mutex
	current   AppState
	listeners []registration
	nextID    int
}

type registration struct {
	id int
	fn func(AppState)
}

// NewContainer creates a Container holding the initial state tree.
func NewContainer() *Container {
	return &Container{current: NewAppState()}
}

// State returns a snapshot of the current tree.
func (c *Container) State() AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set applies a pure transform and notifies listeners.
func (c *Container) Set(update Update) {
	c.mu.Lock()
	c.current = update(c.current)
	snapshot := c.current
	listeners := make([]registration, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, reg := range listeners {
		reg.fn(snapshot)
	}
}

// Apply merges a partial top-level update and notifies listeners.
func (c *Container) Apply(patch Patch) {
	c.Set(func(s AppState) AppState {
		if patch.User != nil {
			s.User = *patch.User
		}
		if patch.Profile != nil {
			s.Profile = patch.Profile
		}
		if patch.Subscription != nil {
			s.Subscription = patch.Subscription
		}
		if patch.UI != nil {
			s.UI = *patch.UI
		}
		if patch.Data != nil {
			s.Data = *patch.Data
		}
		return s
	})
}

// Subscribe registers a listener and returns an unsubscribe function that
// removes it by identity. Listeners are called in registration order.
func (c *Container) Subscribe(fn func(AppState)) func() {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, registration{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, reg := range c.listeners {
			if reg.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}
