// Package game drives named unit managers stored in the snapshot store:
// it builds new games from configuration and applies one command at a time,
// saving the result after every change.
package game

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/internal/config"
	"github.com/gravitas-games/hexunits/internal/gamemap"
	"github.com/gravitas-games/hexunits/internal/random"
	"github.com/gravitas-games/hexunits/internal/store"
	"github.com/gravitas-games/hexunits/internal/telemetry"
	"github.com/gravitas-games/hexunits/internal/units"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

const defaultHealth = 100

// Command errors.
var (
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrIllegalAttack = errors.New("illegal attack")
	ErrMoveRejected  = errors.New("move rejected")
)

// Game wires configuration, storage and telemetry around unit managers.
type Game struct {
	cfg      *config.Config
	layout   *gamemap.Layout
	store    *store.Store
	resolver combat.Resolver
	recorder *telemetry.Recorder
	log      zerolog.Logger
}

// New validates the configured map and combat policy.
func New(cfg *config.Config, st *store.Store, rec *telemetry.Recorder, log zerolog.Logger) (*Game, error) {
	layout, err := gamemap.Build(cfg.Map)
	if err != nil {
		return nil, err
	}
	resolver, ok := combat.ResolverFor(cfg.Combat.Policy)
	if !ok {
		return nil, errors.Errorf("unknown combat policy %q", cfg.Combat.Policy)
	}
	return &Game{
		cfg:      cfg,
		layout:   layout,
		store:    st,
		resolver: resolver,
		recorder: rec,
		log:      log,
	}, nil
}

// Status summarizes a stored game.
type Status struct {
	Name       string         `json:"name"`
	Rows       int            `json:"rows"`
	Columns    int            `json:"columns"`
	Layers     int            `json:"layers"`
	LastUnitID int            `json:"lastUnitId"`
	Players    map[int]int    `json:"players"` // player -> unit count
	Units      []*models.Unit `json:"units"`
}

func status(name string, m *units.Manager) *Status {
	st := &Status{
		Name:       name,
		Rows:       m.Rows(),
		Columns:    m.Columns(),
		Layers:     m.LayerCount(),
		LastUnitID: m.LastUnitID(),
		Players:    make(map[int]int),
	}
	for _, u := range m.Units() {
		st.Units = append(st.Units, u.Clone())
		st.Players[u.Player]++
	}
	return st
}

func (g *Game) options() []units.Option {
	bus := units.NewSimpleEventBus()
	if g.recorder != nil {
		g.recorder.Attach(bus)
	}
	return []units.Option{
		units.WithLogger(g.log),
		units.WithUnitTypes(g.cfg.UnitTypes...),
		units.WithResolver(g.resolver),
		units.WithEventBus(bus),
	}
}

// Init builds a fresh manager from configuration, places the configured
// units and saves it under name.
func (g *Game) Init(name string) (*Status, error) {
	m := g.layout.NewManager(g.options()...)
	for i, uc := range g.cfg.Units {
		u, err := newUnit(uc)
		if err != nil {
			return nil, err
		}
		if !m.CreateUnit(u) {
			return nil, errors.Errorf("unit %d cannot be placed at %s on layer %d", i, u.Position, u.Layer)
		}
		// templates do not carry current vitals
		if uc.Health == 0 {
			u.Health = defaultHealth
			if u.MaxHealth > 0 {
				u.Health = u.MaxHealth
			}
		}
		if uc.Movement == 0 {
			u.Movement = u.MaxMovement
		}
	}
	if err := g.save(name, m); err != nil {
		return nil, err
	}
	g.log.Info().Str("game", name).Int("units", m.UnitCount()).Msg("game created")
	return status(name, m), nil
}

func newUnit(uc config.UnitConfig) (*models.Unit, error) {
	u := &models.Unit{
		Player:   uc.Player,
		Type:     uc.Type,
		Name:     uc.Name,
		Health:   uc.Health,
		Movement: uc.Movement,
		Position: hex.NewCube(uc.Q, uc.R),
		Layer:    uc.Layer,
	}
	if uc.Seed != nil {
		u.Seed = *uc.Seed
		return u, nil
	}
	seed, err := random.NewSeed()
	if err != nil {
		return nil, err
	}
	u.Seed = seed
	return u, nil
}

// Show returns the state of the latest snapshot of name.
func (g *Game) Show(name string) (*Status, error) {
	m, err := g.load(name)
	if err != nil {
		return nil, err
	}
	return status(name, m), nil
}

func (g *Game) load(name string) (*units.Manager, error) {
	return g.store.LoadManager(name, g.options()...)
}

func (g *Game) save(name string, m *units.Manager) error {
	if _, err := g.store.SaveManager(name, g.cfg.Store.Format, m); err != nil {
		return err
	}
	pruned, err := g.store.Prune(name, g.cfg.Store.Keep)
	if err != nil {
		return err
	}
	if pruned > 0 {
		g.log.Debug().Str("game", name).Int64("pruned", pruned).Msg("old snapshots pruned")
	}
	return nil
}

// run loads name into a session, applies fn under its lock and saves the
// manager when fn succeeds.
func (g *Game) run(name string, fn func(m *units.Manager) error) error {
	m, err := g.load(name)
	if err != nil {
		return err
	}
	if err := units.Query(units.NewSession(m), fn); err != nil {
		return err
	}
	return g.save(name, m)
}
