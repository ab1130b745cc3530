package server

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/voicelist/component"
)

const componentName = "http-server"

var _ component.Component = (*Component)(nil)

// Component adapts Server to component.Component.
type Component struct {
	server  *Server
	started atomic.Bool
}

// NewComponent returns a component backed by the given Server.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Server returns the wrapped server.
func (c *Component) Server() *Server { return c.server }

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (c *Component) Start(ctx context.Context) error {
	if err := c.server.Start(ctx); err != nil {
		return err
	}
	c.started.Store(true)
	return nil
}

// Stop gracefully shuts down the underlying HTTP server.
func (c *Component) Stop(ctx context.Context) error {
	c.started.Store(false)
	return c.server.Stop(ctx)
}

// Health reports healthy while the server is serving.
func (c *Component) Health(_ context.Context) component.Health {
	if c.started.Load() {
		return component.Health{Name: componentName, Status: component.StatusHealthy}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusUnhealthy,
		Message: "HTTP server not started",
	}
}
