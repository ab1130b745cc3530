// Package bootstrap runs the application lifecycle: typed config, logger
// setup, ordered component start, configure callbacks, startup and shutdown
// hooks and graceful stop on SIGINT/SIGTERM.
package bootstrap
