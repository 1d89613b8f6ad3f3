package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// ServiceName identifies this service in exported metrics
	ServiceName = "mindpulse"
	// MeterName is the instrumentation scope for application metrics
	MeterName = "mindpulse"
)

// Metrics bundles the meter provider, the application instruments and the
// Prometheus scrape handler.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
	handler  http.Handler
	logger   *slog.Logger

	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram
	analysisTotal   metric.Int64Counter
	reloadsTotal    metric.Int64Counter
}

// InitializeMetrics sets up an OpenTelemetry meter provider backed by the
// Prometheus exporter and registers the application instruments.
func InitializeMetrics(version string, logger *slog.Logger) (*Metrics, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	m := &Metrics{
		provider: provider,
		meter:    provider.Meter(MeterName),
		handler:  promhttp.Handler(),
		logger:   logger.With(slog.String("component", "metrics")),
	}
	if err := m.createInstruments(); err != nil {
		return nil, fmt.Errorf("create instruments: %w", err)
	}
	return m, nil
}

func (m *Metrics) createInstruments() error {
	var err error
	if m.requestsTotal, err = m.meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total HTTP requests processed")); err != nil {
		return err
	}
	if m.requestDuration, err = m.meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return err
	}
	if m.analysisTotal, err = m.meter.Int64Counter("analysis_operations_total",
		metric.WithDescription("Analysis operations executed, by operation and result source")); err != nil {
		return err
	}
	if m.reloadsTotal, err = m.meter.Int64Counter("dataset_reloads_total",
		metric.WithDescription("Survey dataset reloads")); err != nil {
		return err
	}
	return nil
}

// Handler returns the Prometheus scrape handler
func (m *Metrics) Handler() http.Handler { return m.handler }

// RecordRequest records one completed HTTP request
func (m *Metrics) RecordRequest(ctx context.Context, method, path string, status int, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	m.requestsTotal.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, seconds, attrs)
}

// RecordAnalysis records one analysis operation and the source of its result
func (m *Metrics) RecordAnalysis(ctx context.Context, operation, source string) {
	m.analysisTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("source", source),
	))
}

// RecordReload records one dataset reload
func (m *Metrics) RecordReload(ctx context.Context) {
	m.reloadsTotal.Add(ctx, 1)
}

// Shutdown flushes and stops the meter provider
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
