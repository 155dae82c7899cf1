package monitor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fact-tracker"

// Tracer wraps OpenTelemetry tracing for the service layer.
// Spans go to the global TracerProvider, which is a no-op until one is installed.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Tracer using the global TracerProvider.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// NewTracerWithProvider creates a Tracer bound to a specific provider.
func NewTracerWithProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer: tp.Tracer(tracerName),
	}
}

// StartSpan creates a new span and returns the updated context.
// A nil Tracer falls back to the global provider.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tr := otel.Tracer(tracerName)
	if t != nil {
		tr = t.tracer
	}
	return tr.Start(ctx, fmt.Sprintf("facts.%s", name), trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SpanFromContext returns the current span from the context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// Common attribute keys for fact tracker tracing.
var (
	AttrFactID        = attribute.Key("facts.fact.id")
	AttrParticipantID = attribute.Key("facts.participant.id")
	AttrPageIndex     = attribute.Key("facts.page.index")
	AttrPageSize      = attribute.Key("facts.page.size")
	AttrImported      = attribute.Key("facts.import.imported")
	AttrFailed        = attribute.Key("facts.import.failed")
	AttrRows          = attribute.Key("facts.report.rows")
)
