// Package provider defines the small abstraction every outbound backend in
// the service implements: a named Provider that can report availability,
// and RequestResponse for one-shot calls such as a transcription request
// or an LLM completion.
//
// Middleware wraps a RequestResponse with cross-cutting behavior. Chain
// composes them, first outermost:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("voicelist"),
//	)(raw)
//
// Registry holds named instances so callers can pick one at runtime, and
// Adapt maps a backend call onto domain types.
package provider
