package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const (
	exportTimeout  = time.Second * 3
	metricInterval = time.Second * 5
)

// Enabled is false when neither endpoint is set, spans and metrics are then
// recorded in process but never exported.
func (c OtlpConnConfig) Enabled() bool {
	return c.GrpcEndpoint != "" || c.HttpEndpoint != ""
}

func (c OtlpConnConfig) transport() string {
	if c.GrpcEndpoint != "" {
		return "grpc"
	}
	return "http"
}

func newTraceProvider(ctx context.Context, r *resource.Resource, config OtlpConnConfig) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{trace.WithResource(r)}
	if !config.Enabled() {
		slog.Debug("trace export disabled, no otlp endpoint configured")
		return trace.NewTracerProvider(opts...), nil
	}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	var exporter trace.SpanExporter
	var err error
	switch config.transport() {
	case "grpc":
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(config.GrpcEndpoint),
			otlptracegrpc.WithHeaders(config.Headers),
		)
	default:
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(config.HttpEndpoint),
			otlptracehttp.WithHeaders(config.Headers),
		)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("trace export initialized", "type", config.transport(), "headers", len(config.Headers) > 0)

	return trace.NewTracerProvider(append(opts, trace.WithBatcher(exporter))...), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, config OtlpConnConfig) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(r)}
	if !config.Enabled() {
		slog.Debug("metric export disabled, no otlp endpoint configured")
		return metric.NewMeterProvider(opts...), nil
	}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	var exporter metric.Exporter
	var err error
	switch config.transport() {
	case "grpc":
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(config.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(config.Headers),
		)
	default:
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(config.HttpEndpoint),
			otlpmetrichttp.WithHeaders(config.Headers),
		)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("metric export initialized", "type", config.transport(), "headers", len(config.Headers) > 0)

	reader := metric.NewPeriodicReader(exporter, metric.WithInterval(metricInterval))
	return metric.NewMeterProvider(append(opts, metric.WithReader(reader))...), nil
}
