package units

import (
	"github.com/gravitas-games/hexunits/internal/grid"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

// MoveUnit teleports a unit to destination on its own layer, ignoring its
// movement budget. It fails when the unit is unknown or the destination is
// off the map or not empty.
func (m *Manager) MoveUnit(id int, destination hex.Cube) bool {
	unit, ok := m.units[id]
	if !ok {
		m.log.Debug().Int("unit", id).Str("reason", "unknown unit").Msg("move rejected")
		return false
	}
	to, ok := m.locate(destination)
	if !ok {
		m.reject("move", unit, "destination out of bounds")
		return false
	}
	if m.grid.CellAt(unit.Layer, to) != grid.Empty {
		m.reject("move", unit, "destination not empty")
		return false
	}
	m.relocate(unit, to, destination, 0)
	return true
}

// MoveUnitByPath moves a unit along path to target, charging the entry cost
// of every tile after the first up to and including target.
//
// The path must start on the unit's tile and contain target, and target must
// be empty. The move is allowed when the cost fits the remaining movement,
// or exceeds it by one point as long as the target tile is not an
// infinite-cost tile. Movement never drops below zero.
func (m *Manager) MoveUnitByPath(id int, path []hex.Weighted, target hex.Cube) bool {
	unit, ok := m.units[id]
	if !ok {
		m.log.Debug().Int("unit", id).Str("reason", "unknown unit").Msg("path move rejected")
		return false
	}
	if len(path) == 0 {
		m.reject("path move", unit, "empty path")
		return false
	}
	if path[0].Coordinates != unit.Position {
		m.reject("path move", unit, "path does not start at unit")
		return false
	}
	to, ok := m.locate(target)
	if !ok {
		m.reject("path move", unit, "target out of bounds")
		return false
	}
	if m.grid.CellAt(unit.Layer, to) != grid.Empty {
		m.reject("path move", unit, "target not empty")
		return false
	}

	idx := -1
	for i := 1; i < len(path); i++ {
		if path[i].Coordinates == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.reject("path move", unit, "target not on path")
		return false
	}

	cost := 0
	for i := 1; i <= idx; i++ {
		cost = hex.AddCost(cost, path[i].Cost)
	}
	if !canAfford(unit, cost, path[idx].Cost) {
		m.log.Debug().Int("unit", unit.ID).Int("cost", cost).Int("movement", unit.Movement).Msg("path move rejected: not enough movement")
		return false
	}

	m.relocate(unit, to, target, cost)
	unit.Movement = max(0, unit.Movement-cost)
	return true
}

// canAfford applies the movement budget rule, including the one point of
// overshoot that is never granted onto an infinite-cost tile.
func canAfford(unit *models.Unit, cost, targetCost int) bool {
	if cost <= unit.Movement {
		return true
	}
	return cost <= unit.Movement+1 && targetCost != hex.InfiniteCost
}

func (m *Manager) relocate(unit *models.Unit, to hex.Offset, destination hex.Cube, cost int) {
	from := unit.Position
	if o, ok := m.locate(from); ok && m.grid.CellAt(unit.Layer, o) == unit.ID {
		m.grid.SetCellAt(unit.Layer, o, grid.Empty)
	}
	m.grid.SetCellAt(unit.Layer, to, unit.ID)
	unit.Position = destination

	m.log.Debug().Int("unit", unit.ID).Stringer("from", from).Stringer("to", destination).Int("cost", cost).Msg("unit moved")
	m.events.Publish(Event{Type: EventUnitMoved, UnitID: unit.ID, Player: unit.Player, From: from, To: destination, Layer: unit.Layer, Cost: cost})
}
