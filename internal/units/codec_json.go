package units

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/gravitas-games/hexunits/pkg/models"
)

// ToJSON encodes the full manager state.
func (m *Manager) ToJSON() ([]byte, error) {
	data, err := json.Marshal(m.snapshot())
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	return data, nil
}

// FromJSON decodes a snapshot produced by ToJSON into a new manager.
func FromJSON(data []byte, opts ...Option) (*Manager, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(ErrMalformedSnapshot, "decode json: %v", err)
	}
	if s.Units == nil {
		s.Units = map[int]*models.Unit{}
	}
	return restore(s, opts...)
}
