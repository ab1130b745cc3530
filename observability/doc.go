// Package observability wires OpenTelemetry tracing and metrics.
//
// InitTracer and InitMeter install OTLP/HTTP exporters as the global
// providers when enabled in config. Without them StartSpan and Meter hand
// out no-op implementations, so instrumented code runs unchanged.
//
//	ctx, span := observability.StartSpan(ctx, "transcribe")
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("voicelist"))
//	metrics.RecordItems(ctx, "heuristic", 3)
package observability
