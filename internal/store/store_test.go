package store

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/hexunits/internal/config"
	"github.com/gravitas-games/hexunits/internal/units"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "hexunits.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleManager(t *testing.T) *units.Manager {
	t.Helper()
	m := units.NewManager([][]int{make([]int, 9)}, 3, 3, nil)
	require.True(t, m.CreateUnit(&models.Unit{Player: 1, Health: 100, Name: "Warrior", Seed: 7, Position: hex.NewCube(0, 0)}))
	require.True(t, m.CreateUnit(&models.Unit{Player: 2, Health: 50, Images: []string{"x.png"}, Position: hex.NewCube(1, 1)}))
	return m
}

func TestSaveAndLatest(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Save("alpha", config.FormatJSON, 1, []byte(`{}`))
	require.NoError(t, err)
	second, err := s.Save("alpha", config.FormatBinary, 1, []byte{1, 2, 3})
	require.NoError(t, err)
	_, err = s.Save("beta", config.FormatBinary, 1, []byte{9})
	require.NoError(t, err)

	latest, err := s.Latest("alpha")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, []byte{1, 2, 3}, latest.Data)
	assert.Equal(t, config.FormatBinary, latest.Format)
	assert.False(t, latest.CreatedAt.IsZero())

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	_, err = s.Latest("gamma")
	assert.True(t, errors.Is(err, ErrNotFound), "%v", err)

	_, err = s.Save("", config.FormatJSON, 1, nil)
	assert.Error(t, err)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 4; i++ {
		_, err := s.Save("alpha", config.FormatBinary, 1, []byte{byte(i)})
		require.NoError(t, err)
	}
	_, err := s.Save("beta", config.FormatBinary, 1, []byte{42})
	require.NoError(t, err)

	removed, err := s.Prune("alpha", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	count, err := s.Count("alpha")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	latest, err := s.Latest("alpha")
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, latest.Data)

	_, err = s.Latest("beta")
	assert.NoError(t, err, "other names are untouched")
}

func TestManagerRoundTrip(t *testing.T) {
	cases := []struct {
		format  string
		version int
	}{
		{config.FormatBinary, units.BinaryVersion},
		{config.FormatJSON, 0},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			s := openTestStore(t)
			m := sampleManager(t)

			snap, err := s.SaveManager("game", tc.format, m)
			require.NoError(t, err)
			assert.Equal(t, tc.version, snap.Version)

			latest, err := s.Latest("game")
			require.NoError(t, err)
			assert.Equal(t, tc.version, latest.Version)

			loaded, err := s.LoadManager("game")
			require.NoError(t, err)
			assert.Equal(t, m.LastUnitID(), loaded.LastUnitID())
			assert.Equal(t, m.Units(), loaded.Units())
		})
	}
}

func TestSaveManagerRejectsUnknownFormat(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SaveManager("game", "xml", sampleManager(t))
	assert.ErrorContains(t, err, "unknown snapshot format")
}

func TestDecodeCorruptSnapshot(t *testing.T) {
	_, err := Decode(&Snapshot{ID: 3, Format: config.FormatBinary, Data: []byte{2, 0, 0, 0}})
	assert.True(t, errors.Is(err, units.ErrUnsupportedVersion), "%v", err)

	_, err = Decode(&Snapshot{ID: 4, Format: config.FormatJSON, Data: []byte("nope")})
	assert.True(t, errors.Is(err, units.ErrMalformedSnapshot), "%v", err)
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save("mem", config.FormatJSON, 1, []byte(`{}`))
	require.NoError(t, err)
	_, err = s.Latest("mem")
	assert.NoError(t, err)
}
