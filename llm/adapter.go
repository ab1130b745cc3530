package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/voicelist/httpclient"
	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/provider"
)

// Sentinel errors.
var (
	ErrNoDialect     = errors.New("llm: dialect is required")
	ErrMissingAPIKey = errors.New("llm: missing API key")
)

var _ provider.RequestResponse[CompletionRequest, CompletionResponse] = (*Adapter)(nil)

// Adapter is a completion client for one provider.
type Adapter struct {
	http      *httpclient.Adapter
	dialect   Dialect
	apiKey    string
	model     string
	temp      float64
	maxTokens int
}

// New creates an adapter for the dialect registered under cfg.Dialect.
func New(cfg Config, opts ...httpclient.Option) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(dialect, cfg, opts...)
}

// NewWithDialect creates an adapter without going through the registry.
func NewWithDialect(dialect Dialect, cfg Config, opts ...httpclient.Option) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	if cfg.Dialect == "" {
		cfg.Dialect = dialect.Name()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = dialect.BaseURL()
	}
	if cfg.Model == "" {
		cfg.Model = dialect.Model()
	}

	httpCfg := httpclient.Config{
		Name:    cfg.Name,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    dialect.Authorize(cfg.APIKey),
	}
	if cfg.Retry != nil {
		retry := *cfg.Retry
		if retry.RetryIf == nil {
			retry.RetryIf = httpclient.IsRetryable
		}
		httpCfg.Retry = &retry
	}
	if cfg.CircuitBreaker != nil {
		cb := *cfg.CircuitBreaker
		if cb.Name == "" {
			cb.Name = cfg.Name
		}
		if cb.IsFailure == nil {
			cb.IsFailure = httpclient.IsRetryable
		}
		httpCfg.CircuitBreaker = &cb
	}

	client, err := httpclient.New(httpCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	return &Adapter{
		http:      client,
		dialect:   dialect,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		temp:      cfg.Temperature,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.http.Name() }

// IsAvailable reports a configured key and a closed circuit. It makes no
// network call.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	return a.apiKey != "" && a.http.IsAvailable(ctx)
}

// Execute sends one completion request.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if a.apiKey == "" {
		return CompletionResponse{}, ErrMissingAPIKey
	}
	a.applyDefaults(&req)

	body, err := a.dialect.Encode(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	resp, err := httpclient.Post[json.RawMessage](ctx, a.http, a.dialect.Endpoint(req.Model), body)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: execute: %w", err)
	}

	result, err := a.dialect.Decode(resp.Data)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: parse response: %w", err)
	}
	if result.Model == "" {
		result.Model = req.Model
	}
	return *result, nil
}

// AsProvider wraps the adapter with logging, metrics and tracing.
func (a *Adapter) AsProvider(log *logger.Logger, metrics *observability.Metrics, serviceName string) provider.RequestResponse[CompletionRequest, CompletionResponse] {
	return provider.Chain(
		provider.WithLogging[CompletionRequest, CompletionResponse](log),
		provider.WithMetrics[CompletionRequest, CompletionResponse](metrics),
		provider.WithTracing[CompletionRequest, CompletionResponse](serviceName),
	)(a)
}

// Dialect returns the adapter's dialect.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// Model returns the default model.
func (a *Adapter) Model() string { return a.model }

// Close drops idle connections.
func (a *Adapter) Close() { a.http.Close() }

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.maxTokens
	}
}
