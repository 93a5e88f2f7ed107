package trace

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(ctx context.Context) error

func CreateNoOpTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("no-op")
}

// CreateTracer exports over otlp grpc, the endpoint comes from OTEL_EXPORTER_OTLP_ENDPOINT.
func CreateTracer(ctx context.Context, serviceName, serviceVersion string) (trace.Tracer, ShutdownFunc, error) {
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient())
	if err != nil {
		return nil, nil, errors.Wrap(err, "create tracer failed")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		)),
	)

	return tp.Tracer(serviceName), tp.Shutdown, nil
}
