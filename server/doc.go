// Package server provides the HTTP server: a Gin engine mounted on a
// ServeMux, served with h2c, with a net/http middleware stack applied around
// every route.
//
// Built-in middleware (server/middleware): Recovery, RequestID, CORS,
// BodySizeLimit, Metrics and RequestLogger.
//
// Built-in endpoints (server/endpoint): /health aggregates component health
// and /info reports build information.
package server
