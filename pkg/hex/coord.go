package hex

import (
	"fmt"
	"math"
)

// Cube represents cube coordinates (q, r, s) with q+r+s=0.
type Cube struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

// Offset is a row-major (x = column, y = row) position on a rectangular map.
type Offset struct {
	X int
	Y int
}

// Directions for cube neighbors in pointy-top orientation.
var Directions = []Cube{
	{+1, 0, -1}, {+1, -1, 0}, {0, -1, +1}, {-1, 0, +1}, {-1, +1, 0}, {0, +1, -1},
}

// NewCube builds a cube coordinate from q and r, deriving s.
func NewCube(q, r int) Cube { return Cube{Q: q, R: r, S: -q - r} }

// Valid reports whether the coordinate satisfies q+r+s=0.
func (c Cube) Valid() bool { return c.Q+c.R+c.S == 0 }

// Add returns c+o in cube space.
func (c Cube) Add(o Cube) Cube { return Cube{c.Q + o.Q, c.R + o.R, c.S + o.S} }

// Neighbors returns the six adjacent coordinates.
func (c Cube) Neighbors() [6]Cube {
	var out [6]Cube
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

func (c Cube) String() string { return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S) }

// ToOffset converts a cube coordinate to odd-r offset coordinates, where odd
// rows are shoved half a hex to the right.
func (c Cube) ToOffset() Offset {
	x := c.Q + (c.R-(c.R&1))/2
	return Offset{X: x, Y: c.R}
}

// FromOffset is the inverse of Cube.ToOffset.
func FromOffset(o Offset) Cube {
	q := o.X - (o.Y-(o.Y&1))/2
	return NewCube(q, o.Y)
}

// Index returns the row-major index of the offset on a map with the given
// column count. Callers are expected to bounds-check first.
func (o Offset) Index(columns int) int { return o.Y*columns + o.X }

// Distance returns hex distance between two cube coords.
func Distance(a, b Cube) int {
	dq := int(math.Abs(float64(a.Q - b.Q)))
	dr := int(math.Abs(float64(a.R - b.R)))
	ds := int(math.Abs(float64(a.S - b.S)))
	if dq > dr && dq > ds {
		return dq
	}
	if dr > ds {
		return dr
	}
	return ds
}
