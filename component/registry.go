package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/voicelist/logger"
)

// stopTimeout bounds each component's Stop call.
const stopTimeout = 10 * time.Second

type entry struct {
	Component
	started bool
}

// Registry starts components in registration order and stops them in
// reverse order.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	byName  map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*entry)}
}

// Register appends c. Names must be unique; register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	e := &entry{Component: c}
	r.entries = append(r.entries, e)
	r.byName[name] = e

	logger.Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts components in order and returns at the first failure.
// Components that did start stay marked so StopAll releases them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.Info("Starting components", logger.Fields("count", len(r.entries)))
	for _, e := range r.entries {
		if err := e.Start(ctx); err != nil {
			logger.Error("Component start failed", logger.Fields(logger.FieldComponent, e.Name(), logger.FieldError, err.Error()))
			return fmt.Errorf("failed to start %s: %w", e.Name(), err)
		}
		e.started = true
		logger.Debug("Component started", logger.Fields(logger.FieldComponent, e.Name()))
	}
	return nil
}

// StopAll stops started components in reverse order. Every component gets
// its Stop call; the failures are joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !e.started {
			continue
		}
		if err := stopOne(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", e.Name(), err))
			logger.Error("Component stop failed", logger.Fields(logger.FieldComponent, e.Name(), logger.FieldError, err.Error()))
		} else {
			logger.Info("Component stopped", logger.Fields(logger.FieldComponent, e.Name()))
		}
		e.started = false
	}
	return errors.Join(errs...)
}

func stopOne(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	return c.Stop(ctx)
}

// HealthAll reports every registered component's health in registration
// order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Health(ctx)
	}
	return out
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byName[name]; ok {
		return e.Component
	}
	return nil
}
