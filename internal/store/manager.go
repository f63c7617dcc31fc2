package store

import (
	"github.com/pkg/errors"

	"github.com/gravitas-games/hexunits/internal/config"
	"github.com/gravitas-games/hexunits/internal/units"
)

// SaveManager encodes m in format and stores it under name.
func (s *Store) SaveManager(name, format string, m *units.Manager) (*Snapshot, error) {
	var (
		data    []byte
		version int
		err     error
	)
	switch format {
	case config.FormatBinary:
		data, err = m.MarshalBinary()
		version = units.BinaryVersion
	case config.FormatJSON:
		data, err = m.ToJSON()
	default:
		return nil, errors.Errorf("unknown snapshot format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return s.Save(name, format, version, data)
}

// LoadManager decodes the newest snapshot stored under name.
func (s *Store) LoadManager(name string, opts ...units.Option) (*units.Manager, error) {
	snap, err := s.Latest(name)
	if err != nil {
		return nil, err
	}
	return Decode(snap, opts...)
}

// Decode rebuilds a manager from a stored snapshot.
func Decode(snap *Snapshot, opts ...units.Option) (*units.Manager, error) {
	var (
		m   *units.Manager
		err error
	)
	switch snap.Format {
	case config.FormatBinary:
		m, err = units.UnmarshalBinary(snap.Data, opts...)
	case config.FormatJSON:
		m, err = units.FromJSON(snap.Data, opts...)
	default:
		return nil, errors.Errorf("snapshot %d has unknown format %q", snap.ID, snap.Format)
	}
	return m, errors.Wrapf(err, "decode snapshot %d", snap.ID)
}
