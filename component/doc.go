// Package component defines the lifecycle contract for long-lived parts of
// the service and a Registry that starts them in order, stops them in
// reverse and aggregates their health for the /health endpoint.
package component
