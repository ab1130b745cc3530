package provider

import (
	"slices"
	"sync"
)

// Registry maps names to provider instances. It is safe for concurrent use.
type Registry[T Provider] struct {
	mu     sync.RWMutex
	byName map[string]T
}

// NewRegistry returns an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]T)}
}

// Register stores p under p.Name(), replacing any earlier instance.
func (r *Registry[T]) Register(p T) {
	r.mu.Lock()
	r.byName[p.Name()] = p
	r.mu.Unlock()
}

// Get looks up a provider by name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// List returns the registered names in sorted order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}
