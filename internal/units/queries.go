package units

import (
	"github.com/gravitas-games/hexunits/internal/grid"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

// Sentinels returned by GetTileStatus in place of a cell value.
const (
	TileStatusInvalidCoordinates = -2
	TileStatusInvalidLayer       = -3
)

// GetUnitByID returns the unit with the given id, or nil.
func (m *Manager) GetUnitByID(id int) *models.Unit {
	return m.units[id]
}

// GetUnitsByCoordinates returns the units standing at coords on any layer,
// ordered by layer.
func (m *Manager) GetUnitsByCoordinates(coords hex.Cube) []*models.Unit {
	o, ok := m.locate(coords)
	if !ok {
		return nil
	}
	var out []*models.Unit
	for layer := 0; layer < m.grid.LayerCount(); layer++ {
		if u := m.unitAt(layer, o); u != nil {
			out = append(out, u)
		}
	}
	return out
}

// GetUnitsOfPlayer returns the units owned by player, ordered by id.
func (m *Manager) GetUnitsOfPlayer(player int) []*models.Unit {
	var out []*models.Unit
	for _, u := range m.units {
		if u.Player == player {
			out = append(out, u)
		}
	}
	sortByID(out)
	return out
}

// IsTileOccupied reports whether coords blocks unit on its own layer.
// A friendly occupant always blocks. An enemy occupant blocks only a unit
// that cannot attack when considerCanAttack is set, and never otherwise.
func (m *Manager) IsTileOccupied(coords hex.Cube, unit *models.Unit, considerCanAttack bool) bool {
	occupant := m.occupant(coords, unit)
	if occupant == nil {
		return false
	}
	if occupant.Player == unit.Player {
		return true
	}
	if considerCanAttack {
		return !unit.CanAttack
	}
	return false
}

// CanAttack reports whether unit may attack the occupant of coords. Only
// enemies on the unit's own layer can be attacked.
func (m *Manager) CanAttack(coords hex.Cube, unit *models.Unit) bool {
	if unit == nil || !unit.CanAttack {
		return false
	}
	occupant := m.occupant(coords, unit)
	return occupant != nil && occupant.Player != unit.Player
}

// IsTilePassable reports whether the cell at coords on the unit's layer is
// empty.
func (m *Manager) IsTilePassable(coords hex.Cube, unit *models.Unit) bool {
	if unit == nil || !m.grid.ValidLayer(unit.Layer) {
		return false
	}
	o, ok := m.locate(coords)
	return ok && m.grid.CellAt(unit.Layer, o) == grid.Empty
}

// GetTileStatus returns the raw cell value at coords on layer, or one of the
// TileStatus sentinels. Coordinates are checked before the layer.
func (m *Manager) GetTileStatus(coords hex.Cube, layer int) int {
	o, ok := m.locate(coords)
	if !ok {
		return TileStatusInvalidCoordinates
	}
	if !m.grid.ValidLayer(layer) {
		return TileStatusInvalidLayer
	}
	return m.grid.CellAt(layer, o)
}

// occupant resolves the unit standing at coords on unit's layer.
func (m *Manager) occupant(coords hex.Cube, unit *models.Unit) *models.Unit {
	if unit == nil || !m.grid.ValidLayer(unit.Layer) {
		return nil
	}
	o, ok := m.locate(coords)
	if !ok {
		return nil
	}
	return m.unitAt(unit.Layer, o)
}

func (m *Manager) unitAt(layer int, o hex.Offset) *models.Unit {
	id := m.grid.CellAt(layer, o)
	if id <= grid.Empty {
		return nil
	}
	return m.units[id]
}
