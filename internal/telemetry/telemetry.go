// Package telemetry wires optional OpenTelemetry tracing. Tracing is off
// unless OTEL_EXPORTER_OTLP_ENDPOINT is set, in which case spans are
// exported over OTLP/HTTP.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps the configured tracer provider. A disabled Tracer hands out
// no-op spans, so callers never branch on whether tracing is on.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// Setup builds a Tracer from the environment. Returns a disabled Tracer
// when OTEL_EXPORTER_OTLP_ENDPOINT is not set.
func Setup(ctx context.Context) (*Tracer, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer("uibridge")}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "uibridge"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer("uibridge/server"),
		enabled:  true,
	}, nil
}

// Start opens a span. Works on a disabled Tracer too, returning a no-op span.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return t.tracer.Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// Shutdown flushes pending spans. A disabled Tracer has nothing to flush.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.enabled {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
