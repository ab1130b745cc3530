package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/voicelist/logger"
)

// InitMeter exports metrics over OTLP/HTTP every cfg.MetricInterval and
// installs the provider globally. Shut it down on exit to flush.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	r, err := newResource(res)
	if err != nil {
		return nil, err
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)

	logger.Info("Meter initialized", logger.Fields(
		"service", res.ServiceName, "endpoint", cfg.Endpoint, "interval", cfg.MetricInterval.String()))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter { return otel.Meter(name) }

// Metrics are the instruments voicelist records: inbound HTTP traffic,
// calls to Groq and Gemini, and extraction results.
type Metrics struct {
	httpRequests  metric.Int64Counter
	httpDuration  metric.Float64Histogram
	httpInFlight  metric.Int64UpDownCounter
	providerCalls metric.Int64Counter
	providerTime  metric.Float64Histogram
	errors        metric.Int64Counter
	items         metric.Int64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	build := []struct {
		name string
		make func() error
	}{
		{"http.request.total", func() (err error) {
			m.httpRequests, err = meter.Int64Counter("http.request.total",
				metric.WithDescription("HTTP requests served"))
			return
		}},
		{"http.request.duration", func() (err error) {
			m.httpDuration, err = meter.Float64Histogram("http.request.duration",
				metric.WithDescription("HTTP request latency"), metric.WithUnit("s"))
			return
		}},
		{"http.request.active", func() (err error) {
			m.httpInFlight, err = meter.Int64UpDownCounter("http.request.active",
				metric.WithDescription("HTTP requests in flight"))
			return
		}},
		{"provider.call.total", func() (err error) {
			m.providerCalls, err = meter.Int64Counter("provider.call.total",
				metric.WithDescription("Calls to speech-to-text and completion providers"))
			return
		}},
		{"provider.call.duration", func() (err error) {
			m.providerTime, err = meter.Float64Histogram("provider.call.duration",
				metric.WithDescription("Provider call latency"), metric.WithUnit("s"))
			return
		}},
		{"error.total", func() (err error) {
			m.errors, err = meter.Int64Counter("error.total",
				metric.WithDescription("Errors by type and component"))
			return
		}},
		{"grocery.items.extracted", func() (err error) {
			m.items, err = meter.Int64Histogram("grocery.items.extracted",
				metric.WithDescription("Grocery items extracted per transcript"))
			return
		}},
	}
	for _, b := range build {
		if err := b.make(); err != nil {
			return nil, fmt.Errorf("instrument %s: %w", b.name, err)
		}
	}
	return &m, nil
}

func (m *Metrics) RecordRequestStart(ctx context.Context) { m.httpInFlight.Add(ctx, 1) }

// RecordRequestEnd pairs with RecordRequestStart.
func (m *Metrics) RecordRequestEnd(ctx context.Context, route, method string, status int, d time.Duration) {
	m.httpInFlight.Add(ctx, -1)
	attrs := []attribute.KeyValue{attribute.String("route", route), attribute.String("method", method)}
	m.httpRequests.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.Int("status", status))...))
	m.httpDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOperation counts one provider call; status is "ok" or "error".
func (m *Metrics) RecordOperation(ctx context.Context, provider, operation, status string, d time.Duration) {
	attrs := []attribute.KeyValue{attribute.String("provider", provider), attribute.String("operation", operation)}
	m.providerCalls.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("status", status))...))
	m.providerTime.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType), attribute.String("component", component)))
}

func (m *Metrics) RecordItems(ctx context.Context, extractor string, count int) {
	m.items.Record(ctx, int64(count), metric.WithAttributes(attribute.String("extractor", extractor)))
}
