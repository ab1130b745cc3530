package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/kbukum/voicelist/provider"
	"github.com/kbukum/voicelist/resilience"
)

var _ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)

// Adapter talks to a single upstream API. Requests pass through the
// optional retry loop, then the optional circuit breaker, then the wire.
type Adapter struct {
	client  *http.Client
	config  Config
	breaker *resilience.CircuitBreaker
}

type Option func(*Adapter)

// WithHTTPClient swaps in hc, mainly for tests. hc.Timeout is reset to the
// configured timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		hc.Timeout = a.config.Timeout
		a.client = hc
	}
}

func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	a := &Adapter{
		client: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config: cfg,
	}
	if cfg.CircuitBreaker != nil {
		a.breaker = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Do sends req and reads the whole body. For a non-2xx status it returns
// the response together with a classified *Error.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	attempt := func() (*Response, error) { return a.guarded(ctx, req) }
	if a.config.Retry == nil {
		return attempt()
	}
	return resilience.Retry(ctx, *a.config.Retry, attempt)
}

func (a *Adapter) guarded(ctx context.Context, req Request) (resp *Response, err error) {
	if a.breaker == nil {
		return a.roundTrip(ctx, req)
	}
	err = a.breaker.Execute(func() error {
		var rtErr error
		resp, rtErr = a.roundTrip(ctx, req)
		return rtErr
	})
	return resp, err
}

func (a *Adapter) roundTrip(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, transportError(ctx, fmt.Errorf("read response body: %w", err))
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: body}
	if statusErr := ClassifyStatusCode(resp.StatusCode, body); statusErr != nil {
		return resp, statusErr
	}
	return resp, nil
}

// transportError separates deadlines from refused or dropped connections.
func transportError(ctx context.Context, err error) *Error {
	var netErr net.Error
	if ctx.Err() != nil || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

func (a *Adapter) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewRequestError(fmt.Sprintf("encode body: %v", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.resolve(req.Path), body)
	if err != nil {
		return nil, NewRequestError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}
	for _, headers := range []map[string]string{a.config.Headers, req.Headers} {
		for k, v := range headers {
			httpReq.Header.Set(k, v)
		}
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if req.Auth != nil {
		req.Auth.apply(httpReq)
	} else {
		a.config.Auth.apply(httpReq)
	}
	return httpReq, nil
}

func (a *Adapter) resolve(path string) string {
	if a.config.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// encodeBody returns the reader and the Content-Type it implies, if any.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return v.encode()
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func (a *Adapter) Name() string { return a.config.Name }

// IsAvailable is false only while the circuit is open.
func (a *Adapter) IsAvailable(context.Context) bool {
	return a.breaker == nil || a.breaker.State() != resilience.StateOpen
}

func (a *Adapter) Execute(ctx context.Context, req Request) (*Response, error) {
	return a.Do(ctx, req)
}

func (a *Adapter) Close() { a.client.CloseIdleConnections() }

func (a *Adapter) Config() Config { return a.config }
