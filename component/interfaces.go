package component

import "context"

// HealthStatus is the coarse state reported by /health.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's entry in the /health payload.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a long-lived part of the service, such as the HTTP server or
// the upload spool. Name must be unique within a Registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Overall folds component health into one status. Any unhealthy component
// makes the whole unhealthy; otherwise any degraded one makes it degraded.
func Overall(healths []Health) HealthStatus {
	overall := StatusHealthy
	for _, h := range healths {
		if h.Status == StatusUnhealthy {
			return StatusUnhealthy
		}
		if h.Status == StatusDegraded {
			overall = StatusDegraded
		}
	}
	return overall
}
