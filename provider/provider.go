package provider

import "context"

// Provider is anything the service calls out to: a transcription backend,
// an LLM, an extractor.
type Provider interface {
	Name() string
	// IsAvailable reports whether the provider is configured well enough to
	// try a call. It must not perform network I/O.
	IsAvailable(ctx context.Context) bool
}

// RequestResponse is a Provider with a single one-shot call.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}
