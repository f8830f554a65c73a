package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Factory builds a fresh controller with the given ID.
type Factory func(id uuid.UUID) (*Controller, error)

type entry struct {
	mu   sync.Mutex
	ctrl *Controller
}

// Registry holds live sessions and serializes access to each one. Sessions
// are independent; operations on different sessions do not contend.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	factory  Factory
}

// NewRegistry returns an empty registry that builds controllers with factory.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*entry),
		factory:  factory,
	}
}

// Create registers a new Idle controller and returns its ID.
func (r *Registry) Create() (uuid.UUID, error) {
	id := uuid.New()
	ctrl, err := r.factory(id)
	if err != nil {
		return uuid.Nil, err
	}

	r.mu.Lock()
	r.sessions[id] = &entry{ctrl: ctrl}
	r.mu.Unlock()
	return id, nil
}

// Do runs fn with exclusive access to the session's controller.
func (r *Registry) Do(id uuid.UUID, fn func(*Controller) error) error {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ctrl)
}

// Remove forgets a session. Removing an unknown ID is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
