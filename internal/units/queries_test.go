package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/hexunits/internal/grid"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

func TestOccupancyAndAttackRules(t *testing.T) {
	m := NewManager(emptyMap(2, 4, 4), 4, 4, nil)
	friend := &models.Unit{Player: 1, Position: hex.NewCube(1, 0)}
	enemy := &models.Unit{Player: 2, Position: hex.NewCube(2, 0)}
	flyer := &models.Unit{Player: 2, Position: hex.NewCube(3, 0), Layer: 1}
	for _, u := range []*models.Unit{friend, enemy, flyer} {
		require.True(t, m.CreateUnit(u))
	}

	attacker := &models.Unit{Player: 1, CanAttack: true}
	civilian := &models.Unit{Player: 1, CanAttack: false}
	empty := hex.NewCube(0, 1)

	tests := []struct {
		name          string
		unit          *models.Unit
		coords        hex.Cube
		occupied      bool
		occupiedLoose bool
		canAttack     bool
	}{
		{"attacker vs friend", attacker, friend.Position, true, true, false},
		{"civilian vs friend", civilian, friend.Position, true, true, false},
		{"attacker vs enemy", attacker, enemy.Position, false, false, true},
		{"civilian vs enemy", civilian, enemy.Position, true, false, false},
		{"attacker vs empty", attacker, empty, false, false, false},
		{"attacker vs other layer", attacker, flyer.Position, false, false, false},
		{"attacker off the map", attacker, hex.NewCube(9, 9), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.occupied, m.IsTileOccupied(tt.coords, tt.unit, true))
			assert.Equal(t, tt.occupiedLoose, m.IsTileOccupied(tt.coords, tt.unit, false))
			assert.Equal(t, tt.canAttack, m.CanAttack(tt.coords, tt.unit))
		})
	}
}

func TestIsTilePassable(t *testing.T) {
	m := newTestManager(t)
	m.grid.SetCellAt(0, hex.Offset{X: 2, Y: 2}, grid.Unpassable)
	u := place(t, m, 1, 0, 0)

	assert.True(t, m.IsTilePassable(hex.NewCube(1, 0), u))
	assert.False(t, m.IsTilePassable(u.Position, u))
	assert.False(t, m.IsTilePassable(hex.FromOffset(hex.Offset{X: 2, Y: 2}), u))
	assert.False(t, m.IsTilePassable(hex.NewCube(-1, 0), u))
}

func TestGetTileStatus(t *testing.T) {
	m := newTestManager(t)
	u := place(t, m, 1, 1, 1)

	assert.Equal(t, TileStatusInvalidCoordinates, m.GetTileStatus(hex.NewCube(4, 0), 0))
	assert.Equal(t, TileStatusInvalidCoordinates, m.GetTileStatus(hex.NewCube(0, -1), -1), "coordinates are checked first")
	assert.Equal(t, TileStatusInvalidLayer, m.GetTileStatus(hex.NewCube(0, 0), -1))
	assert.Equal(t, TileStatusInvalidLayer, m.GetTileStatus(hex.NewCube(0, 0), 1))
	assert.Equal(t, u.ID, m.GetTileStatus(u.Position, 0))
	assert.Equal(t, grid.Empty, m.GetTileStatus(hex.NewCube(0, 0), 0))
}

func TestGetUnitsByCoordinatesScansLayers(t *testing.T) {
	m := NewManager(emptyMap(3, 4, 4), 4, 4, nil)
	at := hex.NewCube(1, 2)
	ground := &models.Unit{Player: 1, Position: at}
	air := &models.Unit{Player: 2, Position: at, Layer: 2}
	require.True(t, m.CreateUnit(air))
	require.True(t, m.CreateUnit(ground))
	m.grid.SetCellAt(1, at.ToOffset(), grid.Unpassable)

	assert.Equal(t, []*models.Unit{ground, air}, m.GetUnitsByCoordinates(at))
	assert.Empty(t, m.GetUnitsByCoordinates(hex.NewCube(-3, 0)))
	assert.Empty(t, m.GetUnitsOfPlayer(7))
	assert.Same(t, air, m.GetUnitByID(air.ID))
}
