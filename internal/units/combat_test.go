package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/internal/random"
	"github.com/gravitas-games/hexunits/pkg/models"
)

func duelists(t *testing.T) (*models.Unit, *models.Unit) {
	t.Helper()
	s1, err := random.NewSeed()
	require.NoError(t, err)
	s2, err := random.NewSeed()
	require.NoError(t, err)
	return &models.Unit{ID: 1, Player: 1, CombatStrength: 20, Seed: s1},
		&models.Unit{ID: 2, Player: 2, CombatStrength: 20, Seed: s2}
}

func TestComputeCombatOutcomeEvenStrength(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 10; i++ {
		a, d := duelists(t)
		seedA, seedD := a.Seed, d.Seed

		toAttacker, toDefender := m.ComputeCombatOutcome(a, d, combat.Modifiers{})
		assert.GreaterOrEqual(t, toDefender, 24)
		assert.LessOrEqual(t, toDefender, 36)
		assert.GreaterOrEqual(t, toAttacker, 24)
		assert.LessOrEqual(t, toAttacker, 36)
		assert.NotEqual(t, seedA, a.Seed, "attacker seed advanced")
		assert.NotEqual(t, seedD, d.Seed, "defender seed advanced")
	}
}

func TestComputeCombatOutcomeWithoutCounter(t *testing.T) {
	m := newTestManager(t)
	for _, mods := range []combat.Modifiers{
		{RangedAttack: true},
		{NoCounterAttack: true},
		{RangedAttack: true, NoCounterAttack: true},
	} {
		a, d := duelists(t)
		seedD := d.Seed
		toAttacker, toDefender := m.ComputeCombatOutcome(a, d, mods)
		assert.Zero(t, toAttacker)
		assert.Positive(t, toDefender)
		assert.Equal(t, seedD, d.Seed, "defender did not roll")
	}
}

func TestComputeCombatOutcomeLinearPolicy(t *testing.T) {
	m := newTestManager(t, WithResolver(combat.Linear{}))
	a := &models.Unit{CombatStrength: 30, Seed: 5}
	d := &models.Unit{CombatStrength: 18, Seed: 6}

	toAttacker, toDefender := m.ComputeCombatOutcome(a, d, combat.Modifiers{DefenderFortificationBonus: 2})
	assert.Equal(t, 0, toAttacker)
	assert.Equal(t, 10, toDefender)
	assert.Equal(t, int64(5), a.Seed)
	assert.Equal(t, int64(6), d.Seed)
}
