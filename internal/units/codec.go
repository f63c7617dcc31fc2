package units

import (
	"github.com/pkg/errors"

	"github.com/gravitas-games/hexunits/internal/grid"
	"github.com/gravitas-games/hexunits/pkg/models"
)

var (
	// ErrUnsupportedVersion is returned for binary snapshots of an unknown version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrMalformedSnapshot is returned for snapshots that cannot describe a
	// consistent manager.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// snapshot is the decoded state shared by both codecs.
type snapshot struct {
	LastUnitID int                  `json:"lastUnitId"`
	Map        *grid.Grid           `json:"map"`
	Units      map[int]*models.Unit `json:"units"`
}

func (m *Manager) snapshot() snapshot {
	return snapshot{LastUnitID: m.lastUnitID, Map: m.grid, Units: m.units}
}

// restore validates a decoded snapshot and builds a manager from it. Grid
// cells are then rewritten from the unit records, which win any
// disagreement with the stored cells.
func restore(s snapshot, opts ...Option) (*Manager, error) {
	g := s.Map
	if g == nil {
		return nil, errors.Wrap(ErrMalformedSnapshot, "missing map")
	}
	if g.Rows < 0 || g.Columns < 0 {
		return nil, errors.Wrapf(ErrMalformedSnapshot, "map size %dx%d", g.Rows, g.Columns)
	}
	for i, layer := range g.Layers {
		if len(layer) != g.Rows*g.Columns {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "layer %d has %d cells, want %d", i, len(layer), g.Rows*g.Columns)
		}
		for j, v := range layer {
			if v < grid.Unpassable {
				return nil, errors.Wrapf(ErrMalformedSnapshot, "layer %d cell %d has value %d", i, j, v)
			}
		}
	}
	if s.LastUnitID < 0 {
		return nil, errors.Wrapf(ErrMalformedSnapshot, "negative last unit id %d", s.LastUnitID)
	}

	m := newManager(g, opts...)
	m.lastUnitID = s.LastUnitID
	taken := make(map[[3]int]int, len(s.Units))
	for key, u := range s.Units {
		if u == nil {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "unit %d is null", key)
		}
		if u.ID <= 0 || u.ID != key {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "unit keyed %d has id %d", key, u.ID)
		}
		if !g.ValidLayer(u.Layer) {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "unit %d on layer %d", u.ID, u.Layer)
		}
		o, ok := m.locate(u.Position)
		if !ok {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "unit %d at %s is off the map", u.ID, u.Position)
		}
		cell := [3]int{u.Layer, o.X, o.Y}
		if other, dup := taken[cell]; dup {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "units %d and %d share %s on layer %d", other, u.ID, u.Position, u.Layer)
		}
		taken[cell] = u.ID
		m.units[key] = u
		if u.ID > m.lastUnitID {
			m.log.Warn().Int("last_unit_id", m.lastUnitID).Int("unit", u.ID).Msg("raising last unit id to highest stored unit")
			m.lastUnitID = u.ID
		}
	}

	m.repair()
	return m, nil
}

// repair makes the grid agree with the unit table: stale ids are cleared
// and each unit's id is written into its own cell.
func (m *Manager) repair() {
	fixed := 0
	for layer, cells := range m.grid.Layers {
		for i, v := range cells {
			if v <= grid.Empty {
				continue
			}
			u, ok := m.units[v]
			if !ok || u.Layer != layer || u.Position.ToOffset().Index(m.grid.Columns) != i {
				cells[i] = grid.Empty
				fixed++
			}
		}
	}
	for _, u := range m.units {
		o := u.Position.ToOffset()
		if m.grid.CellAt(u.Layer, o) != u.ID {
			m.grid.SetCellAt(u.Layer, o, u.ID)
			fixed++
		}
	}
	if fixed > 0 {
		m.log.Warn().Int("cells", fixed).Msg("snapshot grid repaired from unit records")
	}
}
