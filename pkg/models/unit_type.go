package models

// UnitType is a unit template. The factory copies these fields onto a new
// unit whose Type matches.
type UnitType struct {
	Type           int         `json:"type" yaml:"type"`
	Name           string      `json:"name" yaml:"name"`
	Description    string      `json:"description" yaml:"description"`
	Images         []string    `json:"images" yaml:"images"`
	Era            int         `json:"era" yaml:"era"`
	MaxHealth      int         `json:"maxHealth" yaml:"max_health"`
	MaxMovement    int         `json:"maxMovement" yaml:"max_movement"`
	MovementType   int         `json:"movementType" yaml:"movement_type"`
	WeaponType     int         `json:"weaponType" yaml:"weapon_type"`
	CombatStrength int         `json:"combatStrength" yaml:"combat_strength"`
	RangedAttack   int         `json:"rangedAttack" yaml:"ranged_attack"`
	Range          int         `json:"range" yaml:"range"`
	Sight          int         `json:"sight" yaml:"sight"`
	CanAttack      bool        `json:"canAttack" yaml:"can_attack"`
	CanBuildCity   bool        `json:"canBuildCity" yaml:"can_build_city"`
	Goods          map[int]int `json:"goods" yaml:"goods"`
	ProductionCost int         `json:"productionCost" yaml:"production_cost"`
	PurchaseCost   int         `json:"purchaseCost" yaml:"purchase_cost"`
	UpkeepCost     int         `json:"upkeepCost" yaml:"upkeep_cost"`
}

// Stamp copies the template's static fields onto u. Identity, placement,
// current vitals and the RNG seed are left untouched.
func (t UnitType) Stamp(u *Unit) {
	u.Name = t.Name
	u.Description = t.Description
	u.Images = append([]string(nil), t.Images...)
	u.Era = t.Era
	u.MaxHealth = t.MaxHealth
	u.MaxMovement = t.MaxMovement
	u.MovementType = t.MovementType
	u.WeaponType = t.WeaponType
	u.CombatStrength = t.CombatStrength
	u.RangedAttack = t.RangedAttack
	u.Range = t.Range
	u.Sight = t.Sight
	u.CanAttack = t.CanAttack
	u.CanBuildCity = t.CanBuildCity
	u.Goods = nil
	if t.Goods != nil {
		u.Goods = make(map[int]int, len(t.Goods))
		for k, v := range t.Goods {
			u.Goods[k] = v
		}
	}
	u.ProductionCost = t.ProductionCost
	u.PurchaseCost = t.PurchaseCost
	u.UpkeepCost = t.UpkeepCost
}
