package models

import "github.com/gravitas-games/hexunits/pkg/hex"

// Unit represents a unit on the hex map.
type Unit struct {
	// Identity
	ID     int `json:"id"`     // Assigned by the unit manager, starting at 1
	Player int `json:"player"` // Owning player

	// Vitals
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`

	// Presentation
	Name        string   `json:"name"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Type        int      `json:"type"` // Template key, see UnitType
	Era         int      `json:"era"`  // Minimum era for this unit

	// Movement
	MaxMovement  int `json:"maxMovement"`
	MovementType int `json:"movementType"` // foot, wheel, shallow water, deep water, air...
	Movement     int `json:"movement"`     // Points left this turn

	// Combat
	WeaponType     int   `json:"weaponType"`
	CombatStrength int   `json:"combatStrength"`
	RangedAttack   int   `json:"rangedAttack"`
	Range          int   `json:"range"`
	Fortification  int   `json:"fortification"`
	Seed           int64 `json:"seed"` // Advanced by every combat roll
	Sight          int   `json:"sight"`

	// Flags
	CanAttack    bool `json:"canAttack"`
	CanBuildCity bool `json:"canBuildCity"`

	// Economy
	Goods          map[int]int `json:"goods"` // good id -> amount needed to produce
	ProductionCost int         `json:"productionCost"`
	PurchaseCost   int         `json:"purchaseCost"`
	UpkeepCost     int         `json:"upkeepCost"`

	// Placement; only the unit manager may change these on a managed unit
	Position hex.Cube `json:"position"`
	Layer    int      `json:"layer"`
}

// Strength returns the base melee strength used by combat resolution.
func (u *Unit) Strength() int { return u.CombatStrength }

// RangedStrength returns the bonus applied on ranged attacks.
func (u *Unit) RangedStrength() int { return u.RangedAttack }

// RandomSeed returns the unit's combat RNG state.
func (u *Unit) RandomSeed() int64 { return u.Seed }

// SetRandomSeed stores the advanced combat RNG state.
func (u *Unit) SetRandomSeed(seed int64) { u.Seed = seed }

// IsAlive reports whether the unit still has health left.
func (u *Unit) IsAlive() bool { return u.Health > 0 }

// Clone returns a deep copy of the unit.
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}
	c := *u
	if u.Images != nil {
		c.Images = append([]string(nil), u.Images...)
	}
	if u.Goods != nil {
		c.Goods = make(map[int]int, len(u.Goods))
		for k, v := range u.Goods {
			c.Goods[k] = v
		}
	}
	return &c
}
