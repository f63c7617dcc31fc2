// Package telemetry turns unit manager events into OpenTelemetry metrics.
package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gravitas-games/hexunits/internal/units"
)

const instrumentationName = "github.com/gravitas-games/hexunits/internal/telemetry"

// Recorder counts manager events.
type Recorder struct {
	created  metric.Int64Counter
	removed  metric.Int64Counter
	moved    metric.Int64Counter
	combats  metric.Int64Counter
	damage   metric.Int64Histogram
	distance metric.Int64Counter
}

// New creates the instruments on meter, or on the global meter provider
// (a no-op unless configured) when meter is nil.
func New(meter metric.Meter) (*Recorder, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	r := &Recorder{}
	var err error

	r.created, err = meter.Int64Counter(
		"hexunits.units.created",
		metric.WithDescription("Units placed on the map"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating created counter")
	}

	r.removed, err = meter.Int64Counter(
		"hexunits.units.removed",
		metric.WithDescription("Units removed from the map"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating removed counter")
	}

	r.moved, err = meter.Int64Counter(
		"hexunits.units.moved",
		metric.WithDescription("Successful unit moves"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating moved counter")
	}

	r.distance, err = meter.Int64Counter(
		"hexunits.units.movement_spent",
		metric.WithDescription("Movement points spent on path moves"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating movement counter")
	}

	r.combats, err = meter.Int64Counter(
		"hexunits.combat.resolved",
		metric.WithDescription("Resolved combats"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating combat counter")
	}

	r.damage, err = meter.Int64Histogram(
		"hexunits.combat.damage",
		metric.WithDescription("Damage dealt per combat side"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating damage histogram")
	}

	return r, nil
}

// Attach subscribes the recorder to every player's events on bus.
func (r *Recorder) Attach(bus units.EventBus) {
	bus.Subscribe(units.AnyPlayer, r.Record)
}

// Record updates the instruments for one event.
func (r *Recorder) Record(e units.Event) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.Int("player", e.Player),
		attribute.Int("layer", e.Layer),
	)

	switch e.Type {
	case units.EventUnitCreated:
		r.created.Add(ctx, 1, attrs)
	case units.EventUnitRemoved:
		r.removed.Add(ctx, 1, attrs)
	case units.EventUnitMoved:
		r.moved.Add(ctx, 1, attrs)
		if e.Cost > 0 {
			r.distance.Add(ctx, int64(e.Cost), attrs)
		}
	case units.EventCombatResolved:
		r.combats.Add(ctx, 1, attrs)
		if e.Outcome != nil {
			r.damage.Record(ctx, int64(e.Outcome.DamageToDefender), metric.WithAttributes(attribute.String("side", "defender")))
			r.damage.Record(ctx, int64(e.Outcome.DamageToAttacker), metric.WithAttributes(attribute.String("side", "attacker")))
		}
	}
}
