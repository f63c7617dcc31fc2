package game

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/internal/config"
	"github.com/gravitas-games/hexunits/internal/units"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/hex/path"
	"github.com/gravitas-games/hexunits/pkg/models"
)

// AttackResult reports a resolved combat.
type AttackResult struct {
	DamageToAttacker int          `json:"damageToAttacker"`
	DamageToDefender int          `json:"damageToDefender"`
	Attacker         *models.Unit `json:"attacker"`
	Defender         *models.Unit `json:"defender"`
	AttackerDied     bool         `json:"attackerDied"`
	DefenderDied     bool         `json:"defenderDied"`
}

// Attack resolves a fight between two units of the stored game, applies the
// damage and removes units that died. Melee needs adjacent units; ranged
// attacks need the target within the attacker's range.
func (g *Game) Attack(name string, attackerID, defenderID int, ranged bool) (*AttackResult, error) {
	var res *AttackResult
	err := g.run(name, func(m *units.Manager) error {
		a, d := m.GetUnitByID(attackerID), m.GetUnitByID(defenderID)
		if a == nil {
			return errors.Wrapf(ErrUnknownUnit, "attacker %d", attackerID)
		}
		if d == nil {
			return errors.Wrapf(ErrUnknownUnit, "defender %d", defenderID)
		}
		if !m.CanAttack(d.Position, a) {
			return errors.Wrapf(ErrIllegalAttack, "unit %d cannot attack unit %d", a.ID, d.ID)
		}
		dist := hex.Distance(a.Position, d.Position)
		switch {
		case ranged && (a.RangedAttack <= 0 || dist > a.Range):
			return errors.Wrapf(ErrIllegalAttack, "unit %d at distance %d is out of range %d", d.ID, dist, a.Range)
		case !ranged && dist != 1:
			return errors.Wrapf(ErrIllegalAttack, "unit %d is not adjacent", d.ID)
		}

		mods := combat.Modifiers{
			AttackerFortificationBonus: a.Fortification,
			DefenderFortificationBonus: d.Fortification,
			RangedAttack:               ranged,
		}
		toAttacker, toDefender := m.ComputeCombatOutcome(a, d, mods)
		a.Health -= toAttacker
		d.Health -= toDefender

		res = &AttackResult{
			DamageToAttacker: toAttacker,
			DamageToDefender: toDefender,
			Attacker:         a.Clone(),
			Defender:         d.Clone(),
			AttackerDied:     !a.IsAlive(),
			DefenderDied:     !d.IsAlive(),
		}
		if res.AttackerDied {
			m.RemoveUnit(a.ID)
		}
		if res.DefenderDied {
			m.RemoveUnit(d.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// MoveResult reports a completed path move.
type MoveResult struct {
	Path         []hex.Weighted `json:"path"`
	Cost         int            `json:"cost"`
	MovementLeft int            `json:"movementLeft"`
}

// Move walks a unit of the stored game to target along the cheapest path
// over empty tiles of its layer.
func (g *Game) Move(name string, id int, target hex.Cube) (*MoveResult, error) {
	var res *MoveResult
	err := g.run(name, func(m *units.Manager) error {
		u := m.GetUnitByID(id)
		if u == nil {
			return errors.Wrapf(ErrUnknownUnit, "unit %d", id)
		}
		p := path.AStar(u.Position, target,
			path.NeighborsWithin(func(c hex.Cube) bool { return m.IsTilePassable(c, u) }),
			func(_, b hex.Cube) int { return g.layout.Cost(u.Layer, b) })
		if p == nil {
			return errors.Wrapf(ErrMoveRejected, "no path from %s to %s", u.Position, target)
		}
		if !m.MoveUnitByPath(u.ID, p, target) {
			return errors.Wrapf(ErrMoveRejected, "unit %d cannot afford path of cost %d with %d movement", u.ID, path.Cost(p), u.Movement)
		}
		res = &MoveResult{Path: p, Cost: path.Cost(p), MovementLeft: u.Movement}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EndTurn restores the movement of every unit of player.
func (g *Game) EndTurn(name string, player int) (int, error) {
	n := 0
	err := g.run(name, func(m *units.Manager) error {
		for _, u := range m.GetUnitsOfPlayer(player) {
			u.Movement = u.MaxMovement
			n++
		}
		return nil
	})
	return n, err
}

// Export writes the latest snapshot of name to w in format.
func (g *Game) Export(name string, w io.Writer, format string) error {
	m, err := g.load(name)
	if err != nil {
		return err
	}
	switch format {
	case config.FormatBinary:
		return m.WriteBinary(w)
	case config.FormatJSON:
		data, err := m.ToJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "write export")
	default:
		return errors.Errorf("unknown snapshot format %q", format)
	}
}
