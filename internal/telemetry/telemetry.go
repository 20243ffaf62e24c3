// Package telemetry sets up the OpenTelemetry tracer provider used to wrap
// UpstreamClient calls; Store calls are not traced. Grounded on the croupier pack's
// go.opentelemetry.io/otel stack.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
)

// Provider wraps the configured TracerProvider and its shutdown hook.
type Provider struct {
	TracerProvider *sdktrace.TracerProvider
}

// New configures a TracerProvider exporting spans over OTLP/HTTP when
// cfg.OtelExporterEndpoint is set, otherwise a provider with no exporter
// (spans are created and dropped — cheap enough for local/dev runs).
func New(ctx context.Context, cfg *config.Config) (*Provider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(cfg.OtelServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if cfg.OtelExporterEndpoint != "" {
		exp, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OtelExporterEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(2*time.Second)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Provider{TracerProvider: tp}, nil
}

// Tracer returns the named tracer from the global provider. Components call
// this rather than holding a Provider directly, following the pattern of a
// package-level otel.Tracer(name) call used throughout the croupier pack.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Shutdown flushes and stops the tracer provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	return p.TracerProvider.Shutdown(ctx)
}
