package monitor

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracerProvider is an installed span pipeline that must be shut down to flush.
type TracerProvider struct {
	*sdktrace.TracerProvider
}

// NewStdoutTracerProvider exports every ended span to w as one JSON document.
// Spans are written synchronously so short CLI runs lose nothing.
func NewStdoutTracerProvider(w io.Writer) (*TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create span exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", tracerName),
		)),
	)
	return &TracerProvider{TracerProvider: tp}, nil
}

// ServiceTracer returns a service Tracer bound to this provider.
func (p *TracerProvider) ServiceTracer() *Tracer {
	return NewTracerWithProvider(p.TracerProvider)
}

// Shutdown flushes pending spans. A nil provider is a no-op.
func (p *TracerProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	return p.TracerProvider.Shutdown(ctx)
}
