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

	"github.com/parakit/parakit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the embedding application.
	ServiceName string
	// ServiceVersion is the version of the application.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for engine observability.
type Metrics struct {
	itemsTotal    metric.Int64Counter
	valuesTotal   metric.Int64Counter
	errorsTotal   metric.Int64Counter
	itemDuration  metric.Float64Histogram
	workersActive metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	itemsTotal, err := meter.Int64Counter("para.items.total",
		metric.WithDescription("Total number of work items processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating para.items.total counter: %w", err)
	}

	valuesTotal, err := meter.Int64Counter("para.values.total",
		metric.WithDescription("Total number of values produced by process functions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating para.values.total counter: %w", err)
	}

	errorsTotal, err := meter.Int64Counter("para.errors.total",
		metric.WithDescription("Total errors by component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating para.errors.total counter: %w", err)
	}

	itemDuration, err := meter.Float64Histogram("para.item.duration",
		metric.WithDescription("Wall-clock duration of item processing in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating para.item.duration histogram: %w", err)
	}

	workersActive, err := meter.Int64UpDownCounter("para.workers.active",
		metric.WithDescription("Number of currently live workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating para.workers.active gauge: %w", err)
	}

	return &Metrics{
		itemsTotal:    itemsTotal,
		valuesTotal:   valuesTotal,
		errorsTotal:   errorsTotal,
		itemDuration:  itemDuration,
		workersActive: workersActive,
	}, nil
}

// RecordWorkerStart increments the live worker count.
func (m *Metrics) RecordWorkerStart(ctx context.Context) {
	m.workersActive.Add(ctx, 1)
}

// RecordWorkerStop decrements the live worker count.
func (m *Metrics) RecordWorkerStop(ctx context.Context) {
	m.workersActive.Add(ctx, -1)
}

// RecordItem records one processed item: its outcome, the number of
// values it produced, and its wall-clock duration.
func (m *Metrics) RecordItem(ctx context.Context, status string, values int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("status", status),
	)
	m.itemsTotal.Add(ctx, 1, attrs)
	m.valuesTotal.Add(ctx, int64(values))
	m.itemDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordError records an error by component.
func (m *Metrics) RecordError(ctx context.Context, component string) {
	m.errorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
	))
}
