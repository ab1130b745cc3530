package provider_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/provider"
)

type echoProvider struct {
	name      string
	available bool
	err       error
	lastCtx   context.Context
}

func (p *echoProvider) Name() string                     { return p.name }
func (p *echoProvider) IsAvailable(context.Context) bool { return p.available }

func (p *echoProvider) Execute(ctx context.Context, in string) (string, error) {
	p.lastCtx = ctx
	if p.err != nil {
		return "", p.err
	}
	return "echo:" + in, nil
}

func TestRegistry(t *testing.T) {
	reg := provider.NewRegistry[*echoProvider]()
	reg.Register(&echoProvider{name: "llm"})
	reg.Register(&echoProvider{name: "heuristic", available: true})
	reg.Register(&echoProvider{name: "llm", available: true})

	p, ok := reg.Get("llm")
	if !ok || !p.available {
		t.Errorf("Get(llm) = %+v, %v; want the later registration", p, ok)
	}
	if _, ok := reg.Get("neural"); ok {
		t.Error("Get(neural) should miss")
	}
	if got, want := reg.List(), []string{"heuristic", "llm"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func tagging(tag string, trace *[]string) provider.Middleware[string, string] {
	return func(rr provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
		return provider.Adapt(rr, rr.Name(),
			func(_ context.Context, in string) (string, error) {
				*trace = append(*trace, tag)
				return in, nil
			},
			func(out string) (string, error) { return out, nil },
		)
	}
}

func TestChain(t *testing.T) {
	var trace []string
	p := &echoProvider{name: "groq"}

	wrapped := provider.Chain(tagging("outer", &trace), tagging("inner", &trace))(p)
	got, err := wrapped.Execute(context.Background(), "milk")
	if err != nil || got != "echo:milk" {
		t.Fatalf("Execute() = %q, %v", got, err)
	}
	if want := []string{"outer", "inner"}; !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}

	if bare := provider.Chain[string, string]()(p); bare != provider.RequestResponse[string, string](p) {
		t.Error("empty Chain should return the provider unchanged")
	}
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantText  []string
	}{
		{"success", nil, `"level":"debug"`, []string{`"provider":"groq"`, `"request_id":"req-1"`}},
		{"failure", errors.New("upstream 503"), `"level":"error"`, []string{`"provider":"groq"`, `"error":"upstream 503"`}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, &buf, "test")
			wrapped := provider.WithLogging[string, string](log)(&echoProvider{name: "groq", err: tc.err})

			ctx := logger.ContextWithRequestID(context.Background(), "req-1")
			_, err := wrapped.Execute(ctx, "audio")
			if !errors.Is(err, tc.err) {
				t.Fatalf("Execute() error = %v, want %v", err, tc.err)
			}

			out := buf.String()
			for _, want := range append(tc.wantText, tc.wantLevel) {
				if !strings.Contains(out, want) {
					t.Errorf("log %s missing %s", out, want)
				}
			}
		})
	}
}

func TestObservabilityMiddlewaresDelegate(t *testing.T) {
	metrics, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error: %v", err)
	}
	p := &echoProvider{name: "gemini", available: true}
	wrapped := provider.Chain(
		provider.WithMetrics[string, string](metrics),
		provider.WithTracing[string, string]("voicelist"),
	)(p)

	if wrapped.Name() != "gemini" || !wrapped.IsAvailable(context.Background()) {
		t.Errorf("Name/IsAvailable not delegated: %q", wrapped.Name())
	}
	ctx := logger.ContextWithRequestID(context.Background(), "req-9")
	if got, err := wrapped.Execute(ctx, "list"); err != nil || got != "echo:list" {
		t.Fatalf("Execute() = %q, %v", got, err)
	}
	if logger.RequestIDFromContext(p.lastCtx) != "req-9" {
		t.Error("tracing middleware dropped the caller's context values")
	}

	p.err = errors.New("quota exceeded")
	if _, err := wrapped.Execute(ctx, "list"); !errors.Is(err, p.err) {
		t.Errorf("Execute() error = %v, want %v", err, p.err)
	}
}

func TestAdapt(t *testing.T) {
	length := provider.Adapt[int, int, string, string](
		&echoProvider{name: "backend", available: true},
		"length",
		func(_ context.Context, n int) (string, error) { return strings.Repeat("x", n), nil },
		func(out string) (int, error) { return len(out), nil },
	)
	if length.Name() != "length" || !length.IsAvailable(context.Background()) {
		t.Errorf("Name/IsAvailable = %q/%v", length.Name(), length.IsAvailable(context.Background()))
	}
	if got, err := length.Execute(context.Background(), 3); err != nil || got != len("echo:xxx") {
		t.Errorf("Execute() = %d, %v", got, err)
	}
}

func TestAdaptErrors(t *testing.T) {
	errIn, errBackend, errOut := errors.New("in"), errors.New("backend"), errors.New("out")
	pass := func(context.Context, int) (string, error) { return "", nil }
	keep := func(string) (int, error) { return 0, nil }

	tests := []struct {
		name    string
		backend *echoProvider
		in      func(context.Context, int) (string, error)
		out     func(string) (int, error)
		want    error
	}{
		{"input mapping", &echoProvider{name: "b"}, func(context.Context, int) (string, error) { return "", errIn }, keep, errIn},
		{"backend", &echoProvider{name: "b", err: errBackend}, pass, keep, errBackend},
		{"output mapping", &echoProvider{name: "b"}, pass, func(string) (int, error) { return 0, errOut }, errOut},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := provider.Adapt[int, int, string, string](tc.backend, "a", tc.in, tc.out)
			if _, err := a.Execute(context.Background(), 1); !errors.Is(err, tc.want) {
				t.Errorf("Execute() error = %v, want %v", err, tc.want)
			}
		})
	}
}
