// Package telemetry installs the OpenTelemetry trace provider used by the
// scraper's spans
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// Config selects an OTLP trace endpoint. With no endpoint set tracing stays
// disabled.
type Config struct {
	HTTPEndpoint string            `json:"httpEndpoint"`
	GRPCEndpoint string            `json:"grpcEndpoint"`
	Headers      map[string]string `json:"headers"`
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool {
	return c.HTTPEndpoint != "" || c.GRPCEndpoint != ""
}

// Shutdown flushes pending spans and stops the provider
type Shutdown func(context.Context) error

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newExporter(ctx context.Context, c Config, logger *zap.SugaredLogger) (sdktrace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if c.GRPCEndpoint != "" {
		logger.Infow("Trace exporter initialized", "type", "grpc", "endpoint", c.GRPCEndpoint)
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpointURL(c.GRPCEndpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
	}

	logger.Infow("Trace exporter initialized", "type", "http", "endpoint", c.HTTPEndpoint)
	return otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(c.HTTPEndpoint),
		otlptracehttp.WithHeaders(c.Headers),
	)
}

// Setup installs a global batching trace provider exporting to the
// configured endpoint. When tracing is disabled it installs nothing and the
// returned Shutdown is a no-op.
func Setup(ctx context.Context, serviceName string, c Config, logger *zap.SugaredLogger) (Shutdown, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if !c.Enabled() {
		logger.Debugw("Tracing disabled, no OTLP endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	r, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("error creating trace resource: %w", err)
	}
	exporter, err := newExporter(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
