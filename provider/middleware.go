package provider

import (
	"context"
	"time"

	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
)

// Middleware wraps a RequestResponse provider with extra behavior.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes mws so that mws[0] is outermost.
func Chain[I, O any](mws ...Middleware[I, O]) Middleware[I, O] {
	return func(rr RequestResponse[I, O]) RequestResponse[I, O] {
		for i := len(mws) - 1; i >= 0; i-- {
			rr = mws[i](rr)
		}
		return rr
	}
}

// interceptor runs around one Execute call. next performs the inner call
// with the (possibly replaced) context.
type interceptor[O any] func(ctx context.Context, name string, next func(context.Context) (O, error)) (O, error)

// intercepted keeps the inner provider's Name and IsAvailable and routes
// Execute through an interceptor.
type intercepted[I, O any] struct {
	RequestResponse[I, O]
	around interceptor[O]
}

func (w *intercepted[I, O]) Execute(ctx context.Context, input I) (O, error) {
	inner := w.RequestResponse
	return w.around(ctx, inner.Name(), func(ctx context.Context) (O, error) {
		return inner.Execute(ctx, input)
	})
}

func intercept[I, O any](around interceptor[O]) Middleware[I, O] {
	return func(rr RequestResponse[I, O]) RequestResponse[I, O] {
		return &intercepted[I, O]{RequestResponse: rr, around: around}
	}
}

// WithLogging logs every call with provider name and duration: failures at
// error level, successes at debug.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return intercept[I, O](func(ctx context.Context, name string, next func(context.Context) (O, error)) (O, error) {
		began := time.Now()
		out, err := next(ctx)

		fields := logger.Fields(
			logger.FieldProvider, name,
			logger.FieldDuration, time.Since(began).Milliseconds(),
		)
		if err != nil {
			log.WithContext(ctx).Error("Provider call failed", logger.MergeWithError(fields, err))
		} else {
			log.WithContext(ctx).Debug("Provider call completed", fields)
		}
		return out, err
	})
}

// WithMetrics records call count, latency and failures on m.
func WithMetrics[I, O any](m *observability.Metrics) Middleware[I, O] {
	return intercept[I, O](func(ctx context.Context, name string, next func(context.Context) (O, error)) (O, error) {
		began := time.Now()
		out, err := next(ctx)

		status := "ok"
		if err != nil {
			status = "error"
			m.RecordError(ctx, "provider", name)
		}
		m.RecordOperation(ctx, name, "execute", status, time.Since(began))
		return out, err
	})
}

// WithTracing wraps each call in a span named "<service>.<provider>".
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return intercept[I, O](func(ctx context.Context, name string, next func(context.Context) (O, error)) (O, error) {
		ctx, span := observability.StartSpan(ctx, serviceName+"."+name)
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrServiceName, serviceName)
		observability.SetSpanAttribute(ctx, observability.AttrProviderName, name)

		out, err := next(ctx)
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
		return out, err
	})
}
