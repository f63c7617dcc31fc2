package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/internal/units"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sum(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	s, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "%T", data)
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecorderCountsManagerEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := New(provider.Meter("test"))
	require.NoError(t, err)

	bus := units.NewSimpleEventBus()
	rec.Attach(bus)
	m := units.NewManager([][]int{make([]int, 16)}, 4, 4, nil,
		units.WithEventBus(bus), units.WithResolver(combat.Linear{}))

	a := &models.Unit{Player: 1, CombatStrength: 30, Movement: 2, Position: hex.NewCube(0, 0)}
	b := &models.Unit{Player: 2, CombatStrength: 20, Position: hex.NewCube(2, 0)}
	require.True(t, m.CreateUnit(a))
	require.True(t, m.CreateUnit(b))
	require.True(t, m.MoveUnitByPath(a.ID, []hex.Weighted{
		{Coordinates: hex.NewCube(0, 0)},
		{Coordinates: hex.NewCube(1, 0), Cost: 2},
	}, hex.NewCube(1, 0)))
	m.ComputeCombatOutcome(a, b, combat.Modifiers{})
	require.True(t, m.RemoveUnit(b.ID))

	got := collect(t, reader)
	assert.EqualValues(t, 2, sum(t, got["hexunits.units.created"]))
	assert.EqualValues(t, 1, sum(t, got["hexunits.units.removed"]))
	assert.EqualValues(t, 1, sum(t, got["hexunits.units.moved"]))
	assert.EqualValues(t, 2, sum(t, got["hexunits.units.movement_spent"]))
	assert.EqualValues(t, 1, sum(t, got["hexunits.combat.resolved"]))

	hist, ok := got["hexunits.combat.damage"].(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	var total int64
	for _, dp := range hist.DataPoints {
		count += dp.Count
		total += dp.Sum
	}
	assert.EqualValues(t, 2, count)
	assert.EqualValues(t, 10, total)
}

func TestNewWithGlobalMeter(t *testing.T) {
	rec, err := New(nil)
	require.NoError(t, err)
	rec.Record(units.Event{Type: units.EventUnitCreated, Player: 1})
}
