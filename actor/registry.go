package actor

import (
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Registry keeps track of the live actors of one simulation.
type Registry struct {
	mu     deadlock.RWMutex
	list   []*Actor
	actors map[uuid.UUID]*Actor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{actors: make(map[uuid.UUID]*Actor)}
}

// Register adds the actor to the registry. Registering an actor twice has no effect.
func (r *Registry) Register(a *Actor) {
	r.mu.Lock()
	if _, ok := r.actors[a.id]; !ok {
		r.list = append(r.list, a)
		r.actors[a.id] = a
	}
	r.mu.Unlock()

	a.mu.Lock()
	a.registry = r
	a.mu.Unlock()
}

// Unregister removes the actor from the registry. Unregistering an absent actor is a no-op.
func (r *Registry) Unregister(a *Actor) {
	r.mu.Lock()
	if _, ok := r.actors[a.id]; ok {
		delete(r.actors, a.id)
		for i, other := range r.list {
			if other == a {
				r.list = append(r.list[:i:i], r.list[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	a.mu.Lock()
	if a.registry == r {
		a.registry = nil
	}
	a.mu.Unlock()
}

// Get returns the actor with the given identity.
func (r *Registry) Get(id uuid.UUID) (*Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actors[id]
	return a, ok
}

// All returns a snapshot of the registered actors in registration order. The registry may be changed
// while iterating the snapshot.
func (r *Registry) All() []*Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Actor, len(r.list))
	copy(all, r.list)
	return all
}

// Len returns the number of registered actors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}
