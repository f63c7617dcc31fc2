// Package config loads the hexunits YAML configuration.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/hexunits/pkg/models"
)

// ErrInvalidMap is returned when the map section cannot describe a grid.
var ErrInvalidMap = errors.New("invalid map configuration")

// Snapshot formats accepted by StoreConfig.Format.
const (
	FormatBinary = "binary"
	FormatJSON   = "json"
)

// Config holds all hexunits configuration
type Config struct {
	LogLevel  string            `yaml:"log_level"`
	Combat    CombatConfig      `yaml:"combat"`
	Store     StoreConfig       `yaml:"store"`
	Map       MapConfig         `yaml:"map"`
	UnitTypes []models.UnitType `yaml:"unit_types"`
	Units     []UnitConfig      `yaml:"units"`
}

// CombatConfig selects the combat policy
type CombatConfig struct {
	Policy string `yaml:"policy"` // exponential or linear
}

// StoreConfig holds snapshot store settings
type StoreConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // binary or json
	Keep   int    `yaml:"keep"`   // snapshots retained per game
}

// MapConfig describes a rectangular layered map
type MapConfig struct {
	Rows    int           `yaml:"rows"`
	Columns int           `yaml:"columns"`
	Layers  []LayerConfig `yaml:"layers"`
}

// LayerConfig holds the tile codes of one layer. Tiles lists every code in
// row-major order; when it is empty the layer is filled with Fill.
type LayerConfig struct {
	Name        string      `yaml:"name"`
	Tiles       []int       `yaml:"tiles"`
	Fill        int         `yaml:"fill"`
	NotPassable []int       `yaml:"not_passable"`
	Costs       map[int]int `yaml:"costs"` // tile code -> movement cost, negative for special tiles
}

// UnitConfig is an initial unit placement
type UnitConfig struct {
	Player   int    `yaml:"player"`
	Type     int    `yaml:"type"`
	Name     string `yaml:"name"`
	Health   int    `yaml:"health"`   // template max health when omitted
	Movement int    `yaml:"movement"` // template max movement when omitted
	Q        int    `yaml:"q"`
	R        int    `yaml:"r"`
	Layer    int    `yaml:"layer"`
	Seed     *int64 `yaml:"seed"` // drawn at random when omitted
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Set defaults if not provided
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Combat.Policy == "" {
		cfg.Combat.Policy = "exponential"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./hexunits.db"
	}
	if cfg.Store.Keep <= 0 {
		cfg.Store.Keep = 10
	}
	if cfg.Store.Format == "" {
		cfg.Store.Format = FormatBinary
	}
	if cfg.Store.Format != FormatBinary && cfg.Store.Format != FormatJSON {
		return nil, errors.Errorf("unknown snapshot format %q", cfg.Store.Format)
	}

	return &cfg, nil
}
