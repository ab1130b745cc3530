package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TypedResponse carries a JSON body decoded into T.
type TypedResponse[T any] struct {
	StatusCode int
	Header     http.Header
	Data       T
}

// RequestOption adjusts a request built by Get or Post.
type RequestOption func(*Request)

func WithHeader(key, value string) RequestOption {
	return func(r *Request) { r.Headers = setKey(r.Headers, key, value) }
}

func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) { r.Query = setKey(r.Query, key, value) }
}

func setKey(m map[string]string, k, v string) map[string]string {
	if m == nil {
		m = map[string]string{}
	}
	m[k] = v
	return m
}

func Get[T any](ctx context.Context, a *Adapter, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return call[T](ctx, a, Request{Method: http.MethodGet, Path: path}, opts)
}

// Post sends body, encoded as described on Request.Body, and decodes the
// reply into T. An empty reply leaves T at its zero value.
func Post[T any](ctx context.Context, a *Adapter, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return call[T](ctx, a, Request{Method: http.MethodPost, Path: path, Body: body}, opts)
}

func call[T any](ctx context.Context, a *Adapter, req Request, opts []RequestOption) (*TypedResponse[T], error) {
	for _, opt := range opts {
		opt(&req)
	}
	resp, err := a.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	out := &TypedResponse[T]{StatusCode: resp.StatusCode, Header: resp.Header}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
		return nil, fmt.Errorf("httpclient: decode %s %s response: %w", req.Method, req.Path, err)
	}
	return out, nil
}
