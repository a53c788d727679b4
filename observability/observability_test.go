package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-app")

	if cfg.ServiceName != "test-app" {
		t.Errorf("expected ServiceName 'test-app', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-app")

	if cfg.ServiceName != "test-app" {
		t.Errorf("expected ServiceName 'test-app', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordWorkerStart(ctx)
	metrics.RecordItem(ctx, "ok", 3, 100*time.Millisecond)
	metrics.RecordItem(ctx, "error", 0, 5*time.Millisecond)
	metrics.RecordError(ctx, "worker")
	metrics.RecordWorkerStop(ctx)
}

func TestStartSpan_RecordsAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer(defaultTracerName).Start(context.Background(), SpanItem)
	SetSpanAttribute(ctx, AttrWorker, "mapper-0")
	SetSpanAttribute(ctx, AttrValues, 2)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanItem {
		t.Errorf("expected span name %q, got %q", SpanItem, spans[0].Name)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected recorded error event")
	}
	foundWorker := false
	for _, attr := range spans[0].Attributes {
		if string(attr.Key) == AttrWorker && attr.Value.AsString() == "mapper-0" {
			foundWorker = true
		}
	}
	if !foundWorker {
		t.Errorf("expected %s attribute, got %v", AttrWorker, spans[0].Attributes)
	}
}

func TestSetSpanAttribute_NoSpan(t *testing.T) {
	// Must not panic without a recording span in context.
	SetSpanAttribute(context.Background(), AttrItem, "foo")
	SetSpanError(context.Background(), errors.New("ignored"))
}
