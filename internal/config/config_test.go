package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log_level: debug
combat:
  policy: linear
store:
  format: json
  keep: 3
map:
  rows: 2
  columns: 3
  layers:
    - name: ground
      tiles: [0, 0, 4, 0, 1, 1]
      not_passable: [4]
    - name: air
unit_types:
  - type: 1
    name: Warrior
    max_health: 100
    max_movement: 2
    combat_strength: 20
    can_attack: true
    goods: {3: 10}
units:
  - player: 1
    type: 1
    q: 0
    r: 0
    seed: 42
  - player: 2
    type: 1
    q: 1
    r: 1
    health: 60
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexunits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "linear", cfg.Combat.Policy)
	assert.Equal(t, "./hexunits.db", cfg.Store.Path)
	assert.Equal(t, FormatJSON, cfg.Store.Format)
	assert.Equal(t, 3, cfg.Store.Keep)

	require.Len(t, cfg.Map.Layers, 2)
	assert.Equal(t, []int{0, 0, 4, 0, 1, 1}, cfg.Map.Layers[0].Tiles)
	assert.Equal(t, []int{4}, cfg.Map.Layers[0].NotPassable)
	assert.Equal(t, "air", cfg.Map.Layers[1].Name)

	require.Len(t, cfg.UnitTypes, 1)
	assert.Equal(t, "Warrior", cfg.UnitTypes[0].Name)
	assert.Equal(t, 20, cfg.UnitTypes[0].CombatStrength)
	assert.Equal(t, map[int]int{3: 10}, cfg.UnitTypes[0].Goods)

	require.Len(t, cfg.Units, 2)
	require.NotNil(t, cfg.Units[0].Seed)
	assert.Equal(t, int64(42), *cfg.Units[0].Seed)
	assert.Zero(t, cfg.Units[0].Health)
	assert.Nil(t, cfg.Units[1].Seed)
	assert.Equal(t, 60, cfg.Units[1].Health)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("map: {rows: 1, columns: 1}"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "exponential", cfg.Combat.Policy)
	assert.Equal(t, FormatBinary, cfg.Store.Format)
	assert.Equal(t, 10, cfg.Store.Keep)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("map: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = Parse([]byte("store: {format: xml}"))
	assert.ErrorContains(t, err, "unknown snapshot format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HEXUNITS_CONFIG", "/etc/hexunits.yaml")
	t.Setenv("HEXUNITS_LOG_LEVEL", "warn")
	t.Setenv("HEXUNITS_STORE", "/var/lib/hexunits.db")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "/etc/hexunits.yaml", e.ConfigPath)

	cfg, err := Parse([]byte("log_level: debug"))
	require.NoError(t, err)
	e.Apply(cfg)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/var/lib/hexunits.db", cfg.Store.Path)
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("HEXUNITS_LOG_LEVEL", "")
	t.Setenv("HEXUNITS_STORE", "")
	t.Setenv("HEXUNITS_CONFIG", "")
	require.NoError(t, os.Unsetenv("HEXUNITS_CONFIG"))

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "hexunits.yaml", e.ConfigPath)

	cfg, err := Parse(nil)
	require.NoError(t, err)
	e.Apply(cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./hexunits.db", cfg.Store.Path)
}
