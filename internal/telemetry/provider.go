// Package telemetry sets up tracing for the slackhook command.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
)

type Config struct {
	// TraceEndpoint is an OTLP/HTTP URL. Spans are sampled but not exported when it is empty.
	TraceEndpoint   string  `split_words:"true"`
	TraceSampleRate float64 `split_words:"true" default:"1"`
}

// NewTracerProvider builds the provider used by the CLI. The caller owns
// Shutdown, which flushes pending spans.
func NewTracerProvider(ctx context.Context, c Config) (*sdkTrace.TracerProvider, error) {
	opts := []sdkTrace.TracerProviderOption{
		sdkTrace.WithSampler(NewSampler(c.TraceSampleRate)),
		sdkTrace.WithResource(resource.NewSchemaless(attribute.String("service.name", "slackhook"))),
	}

	if c.TraceEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(c.TraceEndpoint))
		if err != nil {
			return nil, fmt.Errorf("creating otlp exporter: %w", err)
		}
		opts = append(opts, sdkTrace.WithBatcher(exporter))
	}

	return sdkTrace.NewTracerProvider(opts...), nil
}
