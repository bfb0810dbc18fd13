package oteltrace

import (
	"context"

	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a Tracer backed by the global OpenTelemetry tracer provider.
// The deployment is expected to install an sdktrace.TracerProvider with an
// exporter via otel.SetTracerProvider before spans are recorded.
func New(name string) observability.Tracer {
	if name == "" {
		name = "jam3a-payments"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
