package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/hexunits/pkg/hex"
)

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNewClassifiesNotPassable(t *testing.T) {
	land := repeat(0, 16)
	land[0] = 1
	land[5] = 2
	sea := repeat(3, 16)

	g := New([][]int{land, sea}, 4, 4, [][]int{{1, 2}, {}})
	require.Equal(t, 2, g.LayerCount())
	assert.Equal(t, Unpassable, g.CellAt(0, hex.Offset{X: 0, Y: 0}))
	assert.Equal(t, Unpassable, g.CellAt(0, hex.Offset{X: 1, Y: 1}))
	assert.Equal(t, Empty, g.CellAt(0, hex.Offset{X: 2, Y: 0}))
	for _, v := range g.Layers[1] {
		assert.Equal(t, Empty, v)
	}
}

func TestNewIgnoresMismatchedNotPassable(t *testing.T) {
	land := repeat(1, 16)
	g := New([][]int{land}, 4, 4, [][]int{{1}, {1}})
	for _, v := range g.Layers[0] {
		assert.Equal(t, Empty, v)
	}
	g = New([][]int{land}, 4, 4, nil)
	for _, v := range g.Layers[0] {
		assert.Equal(t, Empty, v)
	}
}

func TestBoundsAndCells(t *testing.T) {
	g := New([][]int{repeat(0, 12)}, 3, 4, nil)
	assert.True(t, g.InBounds(hex.Offset{X: 3, Y: 2}))
	assert.False(t, g.InBounds(hex.Offset{X: 4, Y: 0}))
	assert.False(t, g.InBounds(hex.Offset{X: 0, Y: 3}))
	assert.False(t, g.InBounds(hex.Offset{X: -1, Y: 0}))
	assert.True(t, g.ValidLayer(0))
	assert.False(t, g.ValidLayer(1))
	assert.False(t, g.ValidLayer(-1))

	g.SetCellAt(0, hex.Offset{X: 3, Y: 2}, 7)
	assert.Equal(t, 7, g.CellAt(0, hex.Offset{X: 3, Y: 2}))
	assert.Equal(t, 7, g.Layers[0][11])

	c := g.Clone()
	c.SetCellAt(0, hex.Offset{X: 3, Y: 2}, Empty)
	assert.Equal(t, 7, g.CellAt(0, hex.Offset{X: 3, Y: 2}))
}
