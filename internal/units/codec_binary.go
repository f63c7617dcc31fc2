package units

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/gravitas-games/hexunits/internal/grid"
	"github.com/gravitas-games/hexunits/pkg/hex"
	"github.com/gravitas-games/hexunits/pkg/models"
)

// BinaryVersion is the only binary snapshot layout this package reads.
const BinaryVersion = 1

// Decoding limits; anything larger is treated as corruption.
const (
	maxCells   = 1 << 24
	maxString  = 1 << 20
	maxList    = 1 << 16
	maxLayers  = 1 << 8
	maxDimSize = 1 << 15
)

// MarshalBinary encodes the full manager state in the binary layout.
func (m *Manager) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.WriteBinary(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteBinary writes the binary snapshot to w. All integers are
// little-endian; strings are uvarint length-prefixed.
func (m *Manager) WriteBinary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	ew.int32(BinaryVersion)
	ew.int32(m.lastUnitID)
	ew.int32(m.grid.Rows)
	ew.int32(m.grid.Columns)
	ew.int32(m.grid.LayerCount())
	for _, layer := range m.grid.Layers {
		ew.int32(len(layer))
		for _, v := range layer {
			ew.int32(v)
		}
	}

	units := m.Units()
	ew.int32(len(units))
	for _, u := range units {
		ew.int32(u.ID)
		ew.unit(u)
	}

	if ew.err != nil {
		return errors.Wrap(ew.err, "write snapshot")
	}
	return errors.Wrap(bw.Flush(), "flush snapshot")
}

// ReadBinary decodes a snapshot written by WriteBinary into a new manager.
func ReadBinary(r io.Reader, opts ...Option) (*Manager, error) {
	er := &errReader{r: bufio.NewReader(r)}

	version := er.int32()
	if er.err != nil {
		return nil, er.wrap("version")
	}
	if version != BinaryVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}

	s := snapshot{LastUnitID: er.int32(), Map: &grid.Grid{}}
	s.Map.Rows = er.bounded(maxDimSize, "rows")
	s.Map.Columns = er.bounded(maxDimSize, "columns")
	layers := er.bounded(maxLayers, "layer count")
	if er.err != nil {
		return nil, er.wrap("header")
	}
	s.Map.Layers = make([][]int, 0, layers)
	for i := 0; i < layers; i++ {
		n := er.bounded(maxCells, "cell count")
		if er.err != nil {
			return nil, er.wrap("layer")
		}
		cells := make([]int, n)
		for j := range cells {
			cells[j] = er.int32()
		}
		s.Map.Layers = append(s.Map.Layers, cells)
	}

	count := er.bounded(s.Map.Rows*s.Map.Columns*layers, "unit count")
	if er.err != nil {
		return nil, er.wrap("unit count")
	}
	s.Units = make(map[int]*models.Unit, count)
	for i := 0; i < count; i++ {
		key := er.int32()
		u := er.unit()
		if er.err != nil {
			return nil, er.wrap("unit")
		}
		if _, dup := s.Units[key]; dup {
			return nil, errors.Wrapf(ErrMalformedSnapshot, "duplicate unit %d", key)
		}
		s.Units[key] = u
	}
	return restore(s, opts...)
}

// UnmarshalBinary is ReadBinary over a byte slice.
func UnmarshalBinary(data []byte, opts ...Option) (*Manager, error) {
	return ReadBinary(bytes.NewReader(data), opts...)
}

type errWriter struct {
	w   io.Writer
	err error
	buf [binary.MaxVarintLen64]byte
}

func (ew *errWriter) write(p []byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write(p)
}

func (ew *errWriter) int32(v int) {
	if ew.err != nil {
		return
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		ew.err = errors.Errorf("value %d does not fit in int32", v)
		return
	}
	binary.LittleEndian.PutUint32(ew.buf[:4], uint32(int32(v)))
	ew.write(ew.buf[:4])
}

func (ew *errWriter) int64(v int64) {
	binary.LittleEndian.PutUint64(ew.buf[:8], uint64(v))
	ew.write(ew.buf[:8])
}

func (ew *errWriter) bool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	ew.write([]byte{b})
}

func (ew *errWriter) bytes(p []byte) {
	n := binary.PutUvarint(ew.buf[:], uint64(len(p)))
	ew.write(ew.buf[:n])
	ew.write(p)
}

func (ew *errWriter) string(s string) { ew.bytes([]byte(s)) }

func (ew *errWriter) unit(u *models.Unit) {
	ew.int32(u.ID)
	ew.int32(u.Player)
	ew.int32(u.Health)
	ew.int32(u.MaxHealth)
	ew.string(u.Name)

	ew.bool(u.Images != nil)
	if u.Images != nil {
		ew.int32(len(u.Images))
		for _, img := range u.Images {
			ew.string(img)
		}
	}

	ew.string(u.Description)
	ew.int32(u.Type)
	ew.int32(u.Era)
	ew.int32(u.MaxMovement)
	ew.int32(u.MovementType)
	ew.int32(u.Movement)
	ew.int32(u.WeaponType)
	ew.int32(u.CombatStrength)
	ew.int32(u.RangedAttack)
	ew.int32(u.Range)
	ew.int32(u.Fortification)
	ew.int64(u.Seed)
	ew.int32(u.Sight)
	ew.bool(u.CanAttack)
	ew.bool(u.CanBuildCity)

	ew.bool(u.Goods != nil)
	if u.Goods != nil {
		keys := make([]int, 0, len(u.Goods))
		for k := range u.Goods {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		ew.int32(len(keys))
		for _, k := range keys {
			ew.int32(k)
			ew.int32(u.Goods[k])
		}
	}

	ew.int32(u.ProductionCost)
	ew.int32(u.PurchaseCost)
	ew.int32(u.UpkeepCost)

	pos, err := json.Marshal(u.Position)
	if err != nil && ew.err == nil {
		ew.err = err
	}
	ew.bytes(pos)
	ew.int32(u.Layer)
}

type errReader struct {
	r   *bufio.Reader
	err error
	buf [8]byte
}

// wrap marks a read failure as a malformed snapshot, keeping the cause.
func (er *errReader) wrap(what string) error {
	if errors.Is(er.err, ErrMalformedSnapshot) {
		return errors.Wrap(er.err, what)
	}
	return errors.Wrapf(ErrMalformedSnapshot, "%s: %v", what, er.err)
}

func (er *errReader) read(n int) []byte {
	if er.err != nil {
		return er.buf[:n]
	}
	_, er.err = io.ReadFull(er.r, er.buf[:n])
	return er.buf[:n]
}

func (er *errReader) int32() int {
	return int(int32(binary.LittleEndian.Uint32(er.read(4))))
}

func (er *errReader) int64() int64 {
	return int64(binary.LittleEndian.Uint64(er.read(8)))
}

func (er *errReader) bool() bool {
	return er.read(1)[0] != 0
}

// bounded reads an int32 that must lie in [0, limit].
func (er *errReader) bounded(limit int, what string) int {
	v := er.int32()
	if er.err != nil {
		return 0
	}
	if v < 0 || v > limit {
		er.err = errors.Wrapf(ErrMalformedSnapshot, "%s %d out of range", what, v)
		return 0
	}
	return v
}

func (er *errReader) bytes() []byte {
	if er.err != nil {
		return nil
	}
	n, err := binary.ReadUvarint(er.r)
	if err != nil {
		er.err = err
		return nil
	}
	if n > maxString {
		er.err = errors.Wrapf(ErrMalformedSnapshot, "string of %d bytes", n)
		return nil
	}
	p := make([]byte, n)
	_, er.err = io.ReadFull(er.r, p)
	return p
}

func (er *errReader) string() string { return string(er.bytes()) }

func (er *errReader) unit() *models.Unit {
	u := &models.Unit{}
	u.ID = er.int32()
	u.Player = er.int32()
	u.Health = er.int32()
	u.MaxHealth = er.int32()
	u.Name = er.string()

	if er.bool() {
		n := er.bounded(maxList, "image count")
		u.Images = make([]string, 0, n)
		for i := 0; i < n && er.err == nil; i++ {
			u.Images = append(u.Images, er.string())
		}
	}

	u.Description = er.string()
	u.Type = er.int32()
	u.Era = er.int32()
	u.MaxMovement = er.int32()
	u.MovementType = er.int32()
	u.Movement = er.int32()
	u.WeaponType = er.int32()
	u.CombatStrength = er.int32()
	u.RangedAttack = er.int32()
	u.Range = er.int32()
	u.Fortification = er.int32()
	u.Seed = er.int64()
	u.Sight = er.int32()
	u.CanAttack = er.bool()
	u.CanBuildCity = er.bool()

	if er.bool() {
		n := er.bounded(maxList, "goods count")
		u.Goods = make(map[int]int, n)
		for i := 0; i < n && er.err == nil; i++ {
			k := er.int32()
			u.Goods[k] = er.int32()
		}
	}

	u.ProductionCost = er.int32()
	u.PurchaseCost = er.int32()
	u.UpkeepCost = er.int32()

	if pos := er.bytes(); er.err == nil {
		var c hex.Cube
		if err := json.Unmarshal(pos, &c); err != nil {
			er.err = errors.Wrapf(ErrMalformedSnapshot, "position: %v", err)
		}
		u.Position = c
	}
	u.Layer = er.int32()
	return u
}
