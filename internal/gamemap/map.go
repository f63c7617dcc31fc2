// Package gamemap turns the map section of the configuration into the
// layered tile codes the unit manager is built from.
package gamemap

import (
	"github.com/pkg/errors"

	"github.com/gravitas-games/hexunits/internal/config"
	"github.com/gravitas-games/hexunits/internal/units"
	"github.com/gravitas-games/hexunits/pkg/hex"
)

// DefaultCost is charged for entering a tile whose code has no cost entry.
const DefaultCost = 1

// Layout is a validated layered map.
type Layout struct {
	Rows        int
	Columns     int
	Tiles       [][]int
	NotPassable [][]int
	costs       []map[int]int
}

// Build validates cfg and expands fill layers into full tile arrays.
func Build(cfg config.MapConfig) (*Layout, error) {
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		return nil, errors.Wrapf(config.ErrInvalidMap, "size %dx%d", cfg.Rows, cfg.Columns)
	}
	if len(cfg.Layers) == 0 {
		return nil, errors.Wrap(config.ErrInvalidMap, "no layers")
	}

	n := cfg.Rows * cfg.Columns
	l := &Layout{Rows: cfg.Rows, Columns: cfg.Columns}
	seen := make(map[string]bool, len(cfg.Layers))
	for i, layer := range cfg.Layers {
		name := layer.Name
		if name != "" {
			if seen[name] {
				return nil, errors.Wrapf(config.ErrInvalidMap, "duplicate layer name %q", name)
			}
			seen[name] = true
		}

		tiles := layer.Tiles
		switch {
		case len(tiles) == 0:
			tiles = make([]int, n)
			for j := range tiles {
				tiles[j] = layer.Fill
			}
		case len(tiles) != n:
			return nil, errors.Wrapf(config.ErrInvalidMap, "layer %d has %d tiles, want %d", i, len(tiles), n)
		default:
			tiles = append([]int(nil), tiles...)
		}

		l.Tiles = append(l.Tiles, tiles)
		l.NotPassable = append(l.NotPassable, append([]int{}, layer.NotPassable...))
		l.costs = append(l.costs, layer.Costs)
	}
	return l, nil
}

// TileAt returns the tile code at c on layer.
func (l *Layout) TileAt(layer int, c hex.Cube) (int, bool) {
	if layer < 0 || layer >= len(l.Tiles) || !c.Valid() {
		return 0, false
	}
	o := c.ToOffset()
	if o.X < 0 || o.X >= l.Columns || o.Y < 0 || o.Y >= l.Rows {
		return 0, false
	}
	return l.Tiles[layer][o.Index(l.Columns)], true
}

// Cost returns the movement cost of entering c on layer. Negative configured
// costs mark special tiles and map to hex.InfiniteCost.
func (l *Layout) Cost(layer int, c hex.Cube) int {
	code, ok := l.TileAt(layer, c)
	if !ok {
		return hex.InfiniteCost
	}
	cost, ok := l.costs[layer][code]
	switch {
	case !ok || cost == 0:
		return DefaultCost
	case cost < 0:
		return hex.InfiniteCost
	default:
		return cost
	}
}

// NewManager builds a unit manager over the layout.
func (l *Layout) NewManager(opts ...units.Option) *units.Manager {
	return units.NewManager(l.Tiles, l.Rows, l.Columns, l.NotPassable, opts...)
}
