package units

import "github.com/gravitas-games/hexunits/pkg/models"

// Factory stamps template fields onto newly created units.
type Factory struct {
	types map[int]models.UnitType
}

// NewFactory builds a factory from templates. When two templates share a
// type the first one wins.
func NewFactory(types ...models.UnitType) *Factory {
	f := &Factory{types: make(map[int]models.UnitType, len(types))}
	for _, t := range types {
		if _, exists := f.types[t.Type]; !exists {
			f.types[t.Type] = t
		}
	}
	return f
}

// Lookup returns the template for a unit type.
func (f *Factory) Lookup(unitType int) (models.UnitType, bool) {
	if f == nil {
		return models.UnitType{}, false
	}
	t, ok := f.types[unitType]
	return t, ok
}

// Stamp copies the matching template onto u. Units without a template are
// left as given.
func (f *Factory) Stamp(u *models.Unit) bool {
	t, ok := f.Lookup(u.Type)
	if !ok {
		return false
	}
	t.Stamp(u)
	return true
}
