// Package path produces weighted movement paths over cube coordinates.
// The unit manager only validates and applies these paths.
package path

import (
	"container/heap"

	"github.com/gravitas-games/hexunits/pkg/hex"
)

// AStar computes a cheapest path using the A* algorithm.
//   - start, goal: cube coordinates
//   - neighbors: returns adjacent coordinates to explore
//   - cost: cost of entering b from a (values <= 0 count as 1, hex.InfiniteCost
//     marks a special tile that is still traversable)
//
// Returns the path including start and goal, each entry carrying the cost of
// entering it (the start entry costs 0), or nil if no path exists.
func AStar(start, goal hex.Cube,
	neighbors func(c hex.Cube) []hex.Cube,
	cost func(a, b hex.Cube) int,
) []hex.Weighted {
	if start == goal {
		return []hex.Weighted{{Coordinates: start}}
	}
	open := &nodePQ{}
	heap.Init(open)
	push := func(c hex.Cube, g, f int) { heap.Push(open, &pqNode{c: c, g: g, f: f}) }

	g := map[hex.Cube]int{start: 0}
	came := map[hex.Cube]hex.Cube{}
	step := map[hex.Cube]int{}
	closed := map[hex.Cube]bool{}
	push(start, 0, hex.Distance(start, goal))

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode).c
		if closed[cur] {
			continue
		}
		closed[cur] = true
		if cur == goal {
			return reconstruct(start, goal, came, step)
		}
		for _, nb := range neighbors(cur) {
			if closed[nb] {
				continue
			}
			c := cost(cur, nb)
			if c <= 0 {
				c = 1
			}
			tentative := hex.AddCost(g[cur], c)
			old, ok := g[nb]
			if !ok || tentative < old {
				g[nb] = tentative
				came[nb] = cur
				step[nb] = c
				push(nb, tentative, hex.AddCost(tentative, hex.Distance(nb, goal)))
			}
		}
	}
	return nil
}

func reconstruct(start, goal hex.Cube, came map[hex.Cube]hex.Cube, step map[hex.Cube]int) []hex.Weighted {
	path := []hex.Weighted{{Coordinates: goal, Cost: step[goal]}}
	for k := goal; k != start; {
		k = came[k]
		entry := hex.Weighted{Coordinates: k, Cost: step[k]}
		if k == start {
			entry.Cost = 0
		}
		path = append(path, entry)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Cost sums the entry costs of a path, skipping the starting tile.
func Cost(p []hex.Weighted) int {
	total := 0
	for i := 1; i < len(p); i++ {
		total = hex.AddCost(total, p[i].Cost)
	}
	return total
}

type pqNode struct {
	c hex.Cube
	g int
	f int
}

type nodePQ []*pqNode

func (p nodePQ) Len() int { return len(p) }
func (p nodePQ) Less(i, j int) bool {
	if p[i].f == p[j].f {
		return p[i].g > p[j].g
	}
	return p[i].f < p[j].f
}
func (p nodePQ) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p *nodePQ) Push(x any)   { *p = append(*p, x.(*pqNode)) }
func (p *nodePQ) Pop() any {
	old := *p
	n := len(old)
	x := old[n-1]
	*p = old[:n-1]
	return x
}

// NeighborsWithin limits neighbors to a predicate, typically a bounds and
// passability check against the occupancy grid.
func NeighborsWithin(ok func(c hex.Cube) bool) func(c hex.Cube) []hex.Cube {
	return func(c hex.Cube) []hex.Cube {
		out := make([]hex.Cube, 0, 6)
		for _, nb := range c.Neighbors() {
			if ok(nb) {
				out = append(out, nb)
			}
		}
		return out
	}
}

// UniformCost charges the same cost for every step.
func UniformCost(c int) func(a, b hex.Cube) int {
	return func(a, b hex.Cube) int { return c }
}
