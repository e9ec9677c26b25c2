package measurement

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/philipparndt/gomeasure/internal/measurement"

// meter returns the global meter, a no-op unless a provider is installed
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type counters struct {
	created     metric.Int64Counter
	removed     metric.Int64Counter
	diagnostics metric.Int64Counter
}

func newCounters() counters {
	m := meter()
	var c counters
	var err error

	if c.created, err = m.Int64Counter("measurement.created",
		metric.WithDescription("Measurements added to the store")); err != nil {
		c.created = noop.Int64Counter{}
	}
	if c.removed, err = m.Int64Counter("measurement.removed",
		metric.WithDescription("Measurements removed from the store")); err != nil {
		c.removed = noop.Int64Counter{}
	}
	if c.diagnostics, err = m.Int64Counter("measurement.diagnostics",
		metric.WithDescription("Recovered serialization problems")); err != nil {
		c.diagnostics = noop.Int64Counter{}
	}
	return c
}

func (c counters) diagnostic(kind DiagnosticKind) {
	c.diagnostics.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", kind.String())))
}
