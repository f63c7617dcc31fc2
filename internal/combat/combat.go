// Package combat resolves damage between two combat-capable entities.
package combat

import "math"

// Entity is anything that can take part in combat.
type Entity interface {
	Strength() int
	RangedStrength() int
	RandomSeed() int64
	SetRandomSeed(seed int64)
}

// Modifiers are additive bonuses for each side plus the flags that suppress
// the defender's retaliation.
type Modifiers struct {
	AttackerTerrainBonus       int `json:"attackerTerrainBonus"`
	DefenderTerrainBonus       int `json:"defenderTerrainBonus"`
	AttackerFortificationBonus int `json:"attackerFortificationBonus"`
	DefenderFortificationBonus int `json:"defenderFortificationBonus"`
	AttackerWeaponBonus        int `json:"attackerWeaponBonus"`
	DefenderWeaponBonus        int `json:"defenderWeaponBonus"`

	// RangedAttack adds the attacker's ranged strength and spares the attacker.
	RangedAttack bool `json:"rangedAttack"`
	// NoCounterAttack spares the attacker regardless of RangedAttack.
	NoCounterAttack bool `json:"noCounterAttack"`
}

// Outcome is the damage dealt to each side. Applying it is up to the caller.
type Outcome struct {
	DamageToAttacker int `json:"damageToAttacker"`
	DamageToDefender int `json:"damageToDefender"`
}

// Resolver is a combat policy, selected once when the unit manager is built.
type Resolver interface {
	Resolve(attacker, defender Entity, mods Modifiers) Outcome
}

// Policy names accepted by ResolverFor.
const (
	PolicyExponential = "exponential"
	PolicyLinear      = "linear"
)

// ResolverFor returns the resolver registered under name, falling back to
// the exponential policy for unknown names.
func ResolverFor(name string) (Resolver, bool) {
	switch name {
	case PolicyExponential, "":
		return Exponential{}, true
	case PolicyLinear:
		return Linear{}, true
	default:
		return Exponential{}, false
	}
}

// Strengths returns the modified strength of both sides.
func Strengths(attacker, defender Entity, mods Modifiers) (int, int) {
	a := attacker.Strength() + mods.AttackerTerrainBonus + mods.AttackerWeaponBonus + mods.AttackerFortificationBonus
	if mods.RangedAttack {
		a += attacker.RangedStrength()
	}
	d := defender.Strength() + mods.DefenderTerrainBonus + mods.DefenderWeaponBonus + mods.DefenderFortificationBonus
	return a, d
}

func countered(mods Modifiers) bool { return !mods.RangedAttack && !mods.NoCounterAttack }

// Exponential scales a base damage of 30 by e^(0.04*diff) and a random
// factor in [0.8, 1.2) drawn from each side's own seed. Seeds of the sides
// that rolled are advanced.
type Exponential struct{}

// MaxDamage caps a single exponential damage roll.
const MaxDamage = math.MaxInt32

const (
	baseDamage  = 30.0
	damageSlope = 0.04
	minFactor   = 0.8
	maxFactor   = 1.2
)

// Resolve implements Resolver.
func (Exponential) Resolve(attacker, defender Entity, mods Modifiers) Outcome {
	a, d := Strengths(attacker, defender, mods)
	diff := float64(a - d)

	var out Outcome
	factor, next := Uniform(attacker.RandomSeed(), minFactor, maxFactor)
	attacker.SetRandomSeed(next)
	out.DamageToDefender = scaledDamage(diff, factor)

	if countered(mods) {
		factor, next = Uniform(defender.RandomSeed(), minFactor, maxFactor)
		defender.SetRandomSeed(next)
		out.DamageToAttacker = scaledDamage(-diff, factor)
	}
	return out
}

// scaledDamage saturates at MaxDamage; huge strength gaps overflow int.
func scaledDamage(diff, factor float64) int {
	v := math.Round(baseDamage * math.Exp(damageSlope*diff) * factor)
	if v >= MaxDamage {
		return MaxDamage
	}
	return int(v)
}

// Linear is the legacy policy: damage is the strength difference, floored at
// zero, with no randomness. Seeds are left untouched.
type Linear struct{}

// Resolve implements Resolver.
func (Linear) Resolve(attacker, defender Entity, mods Modifiers) Outcome {
	a, d := Strengths(attacker, defender, mods)
	out := Outcome{DamageToDefender: max(0, a-d)}
	if countered(mods) {
		out.DamageToAttacker = max(0, d-a)
	}
	return out
}
