package units

import (
	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/pkg/models"
)

// ComputeCombatOutcome resolves a fight with the manager's combat policy and
// returns the damage dealt to the attacker and to the defender. Seeds of
// both sides may be advanced; health is left for the caller to apply.
func (m *Manager) ComputeCombatOutcome(attacker, defender combat.Entity, mods combat.Modifiers) (int, int) {
	out := m.resolver.Resolve(attacker, defender, mods)

	ev := Event{Type: EventCombatResolved, Outcome: &out}
	if a, ok := attacker.(*models.Unit); ok {
		ev.UnitID, ev.Player, ev.From, ev.Layer = a.ID, a.Player, a.Position, a.Layer
	}
	if d, ok := defender.(*models.Unit); ok {
		ev.TargetID, ev.To = d.ID, d.Position
	}

	m.log.Debug().
		Int("unit", ev.UnitID).
		Int("target", ev.TargetID).
		Int("damage_to_attacker", out.DamageToAttacker).
		Int("damage_to_defender", out.DamageToDefender).
		Msg("combat resolved")
	m.events.Publish(ev)
	return out.DamageToAttacker, out.DamageToDefender
}
