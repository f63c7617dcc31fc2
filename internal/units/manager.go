// Package units owns the authoritative mapping between hex tiles and the
// units standing on them. The Manager is the only mutator of both the
// occupancy grid and the unit table; every mutating call either applies
// completely or leaves both untouched.
package units

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/internal/grid"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

// Manager coordinates the occupancy grid and the unit table.
// It is not safe for concurrent use; wrap it in a Session for that.
type Manager struct {
	lastUnitID int
	grid       *grid.Grid
	units      map[int]*models.Unit

	factory  *Factory
	resolver combat.Resolver
	events   EventBus
	log      zerolog.Logger
}

// Option configures manager construction.
type Option func(*Manager)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithFactory attaches the unit template catalog used by CreateUnit.
func WithFactory(f *Factory) Option {
	return func(m *Manager) { m.factory = f }
}

// WithUnitTypes is shorthand for WithFactory(NewFactory(types...)).
func WithUnitTypes(types ...models.UnitType) Option {
	return WithFactory(NewFactory(types...))
}

// WithResolver selects the combat policy. The default is combat.Exponential.
func WithResolver(r combat.Resolver) Option {
	return func(m *Manager) { m.resolver = r }
}

// WithEventBus attaches an event bus notified after every successful mutation.
func WithEventBus(bus EventBus) Option {
	return func(m *Manager) { m.events = bus }
}

// NewManager builds a manager for a layered map of raw tile codes. Tiles whose
// code appears in the matching notPassable list become unpassable; the lists
// are only honoured when there is exactly one per layer.
func NewManager(tiles [][]int, rows, columns int, notPassable [][]int, opts ...Option) *Manager {
	m := newManager(grid.New(tiles, rows, columns, notPassable), opts...)
	m.log.Info().
		Int("rows", rows).
		Int("columns", columns).
		Int("layers", m.grid.LayerCount()).
		Msg("unit manager created")
	return m
}

func newManager(g *grid.Grid, opts ...Option) *Manager {
	m := &Manager{
		grid:     g,
		units:    make(map[int]*models.Unit),
		factory:  NewFactory(),
		resolver: combat.Exponential{},
		events:   NewNullEventBus(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Rows returns the map height.
func (m *Manager) Rows() int { return m.grid.Rows }

// Columns returns the map width.
func (m *Manager) Columns() int { return m.grid.Columns }

// LayerCount returns the number of map layers.
func (m *Manager) LayerCount() int { return m.grid.LayerCount() }

// LastUnitID returns the id handed to the most recently created unit.
func (m *Manager) LastUnitID() int { return m.lastUnitID }

// UnitCount returns the number of units in the table.
func (m *Manager) UnitCount() int { return len(m.units) }

// Events returns the attached event bus.
func (m *Manager) Events() EventBus { return m.events }

// locate maps a cube coordinate to an in-bounds offset.
func (m *Manager) locate(c hex.Cube) (hex.Offset, bool) {
	if !c.Valid() {
		return hex.Offset{}, false
	}
	o := c.ToOffset()
	return o, m.grid.InBounds(o)
}

// CreateUnit places unit on the map. It fails without side effects when the
// layer does not exist, the position is off the map or the cell is not
// empty. On success the unit's template fields are stamped, it is assigned
// the next id (written into unit.ID) and the manager keeps the pointer.
func (m *Manager) CreateUnit(unit *models.Unit) bool {
	if unit == nil {
		return false
	}
	if !m.grid.ValidLayer(unit.Layer) {
		m.reject("create", unit, "invalid layer")
		return false
	}
	o, ok := m.locate(unit.Position)
	if !ok {
		m.reject("create", unit, "position out of bounds")
		return false
	}
	if m.grid.CellAt(unit.Layer, o) != grid.Empty {
		m.reject("create", unit, "cell not empty")
		return false
	}

	m.factory.Stamp(unit)
	m.lastUnitID++
	unit.ID = m.lastUnitID
	m.units[unit.ID] = unit
	m.grid.SetCellAt(unit.Layer, o, unit.ID)

	m.log.Debug().Int("unit", unit.ID).Int("player", unit.Player).Stringer("position", unit.Position).Int("layer", unit.Layer).Msg("unit created")
	m.events.Publish(Event{Type: EventUnitCreated, UnitID: unit.ID, Player: unit.Player, To: unit.Position, Layer: unit.Layer})
	return true
}

// RemoveUnit clears the unit's cell and erases it from the table.
func (m *Manager) RemoveUnit(id int) bool {
	unit, ok := m.units[id]
	if !ok {
		m.log.Debug().Int("unit", id).Str("reason", "unknown unit").Msg("remove rejected")
		return false
	}
	if o, ok := m.locate(unit.Position); ok && m.grid.CellAt(unit.Layer, o) == id {
		m.grid.SetCellAt(unit.Layer, o, grid.Empty)
	}
	delete(m.units, id)

	m.log.Debug().Int("unit", id).Msg("unit removed")
	m.events.Publish(Event{Type: EventUnitRemoved, UnitID: id, Player: unit.Player, From: unit.Position, Layer: unit.Layer})
	return true
}

// Units returns every unit ordered by id.
func (m *Manager) Units() []*models.Unit {
	out := make([]*models.Unit, 0, len(m.units))
	for _, u := range m.units {
		out = append(out, u)
	}
	sortByID(out)
	return out
}

func sortByID(us []*models.Unit) {
	sort.Slice(us, func(i, j int) bool { return us[i].ID < us[j].ID })
}

func (m *Manager) reject(op string, unit *models.Unit, reason string) {
	m.log.Debug().
		Str("op", op).
		Int("unit", unit.ID).
		Int("layer", unit.Layer).
		Stringer("position", unit.Position).
		Str("reason", reason).
		Msg("operation rejected")
}
