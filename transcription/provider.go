package transcription

import (
	"context"

	"github.com/kbukum/voicelist/provider"
)

// Provider is a speech-to-text backend.
type Provider interface {
	provider.Provider
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// WithMiddleware wraps p with request/response middleware, first outermost.
func WithMiddleware(p Provider, mws ...provider.Middleware[Request, *Response]) Provider {
	if len(mws) == 0 {
		return p
	}
	return &wrapped{rr: provider.Chain(mws...)(&asRequestResponse{p: p})}
}

type asRequestResponse struct{ p Provider }

func (a *asRequestResponse) Name() string                         { return a.p.Name() }
func (a *asRequestResponse) IsAvailable(ctx context.Context) bool { return a.p.IsAvailable(ctx) }
func (a *asRequestResponse) Execute(ctx context.Context, req Request) (*Response, error) {
	return a.p.Transcribe(ctx, req)
}

type wrapped struct {
	rr provider.RequestResponse[Request, *Response]
}

func (w *wrapped) Name() string                         { return w.rr.Name() }
func (w *wrapped) IsAvailable(ctx context.Context) bool { return w.rr.IsAvailable(ctx) }
func (w *wrapped) Transcribe(ctx context.Context, req Request) (*Response, error) {
	return w.rr.Execute(ctx, req)
}
