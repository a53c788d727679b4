// Package observability provides OpenTelemetry tracing and metrics
// integration for the parakit engine.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-app"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanMap)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-app"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-app"))
//	metrics.RecordItem(ctx, "ok", 3, duration)
//
// Both initializers are optional; the engine records metrics and spans
// only when handed a *Metrics or when tracing is explicitly enabled.
package observability
