package provider

import "context"

// Adapt exposes a backend RequestResponse[BI, BO] as RequestResponse[I, O]
// under a new name. toBackend builds the backend input; fromBackend turns
// the backend output into the domain result and may reject it.
func Adapt[I, O, BI, BO any](
	backend RequestResponse[BI, BO],
	name string,
	toBackend func(ctx context.Context, in I) (BI, error),
	fromBackend func(out BO) (O, error),
) RequestResponse[I, O] {
	return &adapter[I, O, BI, BO]{backend: backend, name: name, in: toBackend, out: fromBackend}
}

type adapter[I, O, BI, BO any] struct {
	backend RequestResponse[BI, BO]
	name    string
	in      func(context.Context, I) (BI, error)
	out     func(BO) (O, error)
}

func (a *adapter[I, O, BI, BO]) Name() string { return a.name }

func (a *adapter[I, O, BI, BO]) IsAvailable(ctx context.Context) bool {
	return a.backend.IsAvailable(ctx)
}

func (a *adapter[I, O, BI, BO]) Execute(ctx context.Context, in I) (O, error) {
	var zero O
	req, err := a.in(ctx, in)
	if err != nil {
		return zero, err
	}
	resp, err := a.backend.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	return a.out(resp)
}
