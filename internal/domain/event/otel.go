package event

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
)

// Otel carries trace context across the outbox so spans of async event
// handlers link back to the request that raised the event.
type Otel struct {
	carrier map[string]string
}

func (o *Otel) Propagate(ctx context.Context) {
	if o.carrier == nil {
		o.carrier = make(map[string]string)
	}

	propagation.TraceContext{}.Inject(ctx, propagation.MapCarrier(o.carrier))
	propagation.Baggage{}.Inject(ctx, propagation.MapCarrier(o.carrier))
}

func (o *Otel) Extract() context.Context {
	if o.carrier == nil {
		o.carrier = make(map[string]string)
	}

	ctx := context.Background()
	ctx = propagation.TraceContext{}.Extract(ctx, propagation.MapCarrier(o.carrier))
	ctx = propagation.Baggage{}.Extract(ctx, propagation.MapCarrier(o.carrier))

	return ctx
}
