// Package grid holds the per-layer occupancy arrays of a rectangular hex map.
// Each cell stores Empty, Unpassable or the id of the unit standing on it.
package grid

import "github.com/gravitas-games/hexunits/pkg/hex"

// Reserved cell values. Any positive value is a unit id.
const (
	Empty      = 0
	Unpassable = -1
)

// Grid is a dense, row-major occupancy map with one slice per layer.
type Grid struct {
	Rows    int     `json:"rows"`
	Columns int     `json:"columns"`
	Layers  [][]int `json:"layers"`
}

// New builds a grid from raw tile codes. A tile becomes Unpassable when its
// code is listed in notPassable for its layer; that classification only
// applies when notPassable has one list per layer, otherwise every tile
// starts Empty. Negative sizes are treated as zero.
func New(tiles [][]int, rows, columns int, notPassable [][]int) *Grid {
	rows, columns = max(rows, 0), max(columns, 0)
	g := &Grid{Rows: rows, Columns: columns, Layers: make([][]int, 0, len(tiles))}
	classify := len(notPassable) == len(tiles)
	for i, layer := range tiles {
		var blocked map[int]bool
		if classify {
			blocked = make(map[int]bool, len(notPassable[i]))
			for _, code := range notPassable[i] {
				blocked[code] = true
			}
		}
		cells := make([]int, rows*columns)
		for j := range cells {
			if j < len(layer) && blocked[layer[j]] {
				cells[j] = Unpassable
			}
		}
		g.Layers = append(g.Layers, cells)
	}
	return g
}

// LayerCount returns the number of layers.
func (g *Grid) LayerCount() int { return len(g.Layers) }

// ValidLayer reports whether layer indexes an existing layer.
func (g *Grid) ValidLayer(layer int) bool { return layer >= 0 && layer < len(g.Layers) }

// InBounds reports whether the offset lies within [0,columns)x[0,rows).
func (g *Grid) InBounds(o hex.Offset) bool {
	return o.X >= 0 && o.X < g.Columns && o.Y >= 0 && o.Y < g.Rows
}

// CellAt returns the raw cell value.
func (g *Grid) CellAt(layer int, o hex.Offset) int {
	return g.Layers[layer][o.Index(g.Columns)]
}

// SetCellAt overwrites the raw cell value.
func (g *Grid) SetCellAt(layer int, o hex.Offset, value int) {
	g.Layers[layer][o.Index(g.Columns)] = value
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Rows: g.Rows, Columns: g.Columns, Layers: make([][]int, len(g.Layers))}
	for i, layer := range g.Layers {
		c.Layers[i] = append([]int(nil), layer...)
	}
	return c
}
