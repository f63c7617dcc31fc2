package hex

import "math"

// InfiniteCost marks a path entry that cannot be summed like a regular
// movement cost (river crossings and similar special tiles).
const InfiniteCost = math.MaxInt32

// Weighted is one entry of a movement path: a tile and the cost of entering it.
type Weighted struct {
	Coordinates Cube `json:"coordinates"`
	Cost        int  `json:"cost"`
}

// AddCost sums two movement costs, saturating at InfiniteCost.
func AddCost(a, b int) int {
	if a >= InfiniteCost || b >= InfiniteCost || a > InfiniteCost-b {
		return InfiniteCost
	}
	return a + b
}
