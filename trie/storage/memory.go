package storage

import (
	"fmt"
	"io"
	"sort"

	"github.com/ari-shimizu/dalt/internal/buf"
)

// Memory is a fully mutable, owned BASE/CHECK array and value table.
// Clone performs a deep copy.
type Memory[V any] struct {
	cells  []uint32
	values map[int]V
}

// NewMemory returns an empty Memory storage with no allocated cells.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{values: make(map[int]V)}
}

func (m *Memory[V]) ensureCells(n int) {
	for len(m.cells) <= n {
		cell := packCell(0, Vacant)
		m.cells = append(m.cells, cell)
	}
}

func (m *Memory[V]) BaseAt(i int) int32 {
	if i < 0 || i >= len(m.cells) {
		return 0
	}
	return unpackBase(m.cells[i])
}

func (m *Memory[V]) SetBaseAt(i int, v int32) error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndex, i)
	}
	m.ensureCells(i)
	m.cells[i] = packCell(v, unpackCheck(m.cells[i]))
	return nil
}

func (m *Memory[V]) CheckAt(i int) byte {
	if i < 0 || i >= len(m.cells) {
		return Vacant
	}
	return unpackCheck(m.cells[i])
}

func (m *Memory[V]) SetCheckAt(i int, v byte) error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndex, i)
	}
	m.ensureCells(i)
	m.cells[i] = packCell(unpackBase(m.cells[i]), v)
	return nil
}

func (m *Memory[V]) BaseCheckSize() int {
	return len(m.cells)
}

func (m *Memory[V]) ValueAt(i int) (V, bool) {
	v, ok := m.values[i]
	return v, ok
}

func (m *Memory[V]) AddValueAt(i int, v V) error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndex, i)
	}
	m.values[i] = v
	return nil
}

func (m *Memory[V]) FillingRate() float64 {
	if len(m.cells) == 0 {
		return 0
	}
	filled := 0
	for _, c := range m.cells {
		if unpackCheck(c) != Vacant {
			filled++
		}
	}
	return float64(filled) / float64(len(m.cells))
}

// Serialize writes the image described in spec §6: cell count, packed
// cells, value count, fixed value size (or 0xFFFFFFFF), then each value
// as (index, length, bytes).
func (m *Memory[V]) Serialize(w io.Writer, ser ValueSerializer[V]) error {
	return serializeImage(w, m.cells, m.values, ser)
}

// Clone returns a deep copy: independent cell array and value table.
func (m *Memory[V]) Clone() Storage[V] {
	cells := make([]uint32, len(m.cells))
	copy(cells, m.cells)
	values := make(map[int]V, len(m.values))
	for k, v := range m.values {
		values[k] = v
	}
	return &Memory[V]{cells: cells, values: values}
}

// serializeImage is shared by Memory and Shared, which both hold the same
// in-process representation.
func serializeImage[V any](w io.Writer, cells []uint32, values map[int]V, ser ValueSerializer[V]) error {
	hdr := make([]byte, 4)
	buf.PutU32BE(hdr, uint32(len(cells)))
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	row := make([]byte, 4)
	for _, c := range cells {
		buf.PutU32BE(row, c)
		if _, err := w.Write(row); err != nil {
			return err
		}
	}

	fixedSize, isFixed := ser.FixedSize()
	declaredSize := uint32(0xFFFFFFFF)
	if isFixed {
		declaredSize = uint32(fixedSize)
	}

	countBuf := make([]byte, 4)
	buf.PutU32BE(countBuf, uint32(len(values)))
	if _, err := w.Write(countBuf); err != nil {
		return err
	}
	sizeBuf := make([]byte, 4)
	buf.PutU32BE(sizeBuf, declaredSize)
	if _, err := w.Write(sizeBuf); err != nil {
		return err
	}

	// Deterministic order keeps the image reproducible across runs.
	indices := make([]int, 0, len(values))
	for idx := range values {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		encoded := ser.Serialize(values[idx])
		entryHdr := make([]byte, 8)
		buf.PutU32BE(entryHdr[0:4], uint32(idx))
		buf.PutU32BE(entryHdr[4:8], uint32(len(encoded)))
		if _, err := w.Write(entryHdr); err != nil {
			return err
		}
		if len(encoded) > 0 {
			if _, err := w.Write(encoded); err != nil {
				return err
			}
		}
	}
	return nil
}
