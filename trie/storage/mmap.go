package storage

import (
	"fmt"
	"io"

	"github.com/ari-shimizu/dalt/internal/buf"
	"github.com/ari-shimizu/dalt/internal/mmio"
)

// DefaultCacheCapacity is the default size of Mmap's decoded-value LRU
// cache when the caller does not specify one.
const DefaultCacheCapacity = 256

// Mmap is a read-only projection of a serialized trie image (spec §6),
// optionally embedded after a caller-supplied byte offset so images can
// follow a custom header. SetBaseAt, SetCheckAt, and AddValueAt always
// fail with ErrReadOnly. Decoded values are cached by index with an LRU
// of configurable capacity (capacity 0 disables the cache).
type Mmap[V any] struct {
	data         []byte
	cellsStart   int
	cellCount    int
	valueOffsets map[int]int
	valueSize    int
	deser        ValueDeserializer[V]
	cache        *decodeCache[V]
	unmap        func() error
}

// OpenMmap memory-maps the file at path and constructs an Mmap storage
// reading the image starting at byteOffset. Construction fails if the
// file cannot be opened, the image is truncated, or the declared value
// size is not fixed.
func OpenMmap[V any](path string, byteOffset int, deser ValueDeserializer[V], cacheCapacity int) (*Mmap[V], error) {
	data, unmap, err := mmio.Map(path)
	if err != nil {
		return nil, err
	}
	m, err := NewMmapFromBytes(data, byteOffset, deser, cacheCapacity)
	if err != nil {
		_ = unmap()
		return nil, err
	}
	m.unmap = unmap
	return m, nil
}

// NewMmapFromBytes constructs an Mmap storage directly over an in-memory
// byte slice (e.g. already memory-mapped, or a buffer under test),
// reading the image starting at byteOffset.
func NewMmapFromBytes[V any](data []byte, byteOffset int, deser ValueDeserializer[V], cacheCapacity int) (*Mmap[V], error) {
	if byteOffset < 0 {
		return nil, fmt.Errorf("%w: negative offset", ErrNegativeIndex)
	}
	cellCountRaw, ok := buf.Slice(data, byteOffset, 4)
	if !ok {
		return nil, fmt.Errorf("%w: cell count header", ErrTruncatedImage)
	}
	cellCount32, _ := buf.U32BE(cellCountRaw)
	cellCount := int(cellCount32)
	cellsStart := byteOffset + 4
	if !buf.Has(data, cellsStart, cellCount*4) {
		return nil, fmt.Errorf("%w: cell array", ErrTruncatedImage)
	}

	afterCells := cellsStart + cellCount*4
	mRaw, ok := buf.Slice(data, afterCells, 4)
	if !ok {
		return nil, fmt.Errorf("%w: value count header", ErrTruncatedImage)
	}
	valueCount32, _ := buf.U32BE(mRaw)
	valueCount := int(valueCount32)

	sRaw, ok := buf.Slice(data, afterCells+4, 4)
	if !ok {
		return nil, fmt.Errorf("%w: value size header", ErrTruncatedImage)
	}
	declaredSize32, _ := buf.U32BE(sRaw)
	if declaredSize32 == 0xFFFFFFFF {
		return nil, ErrNonFixedValueSize
	}
	valueSize := int(declaredSize32)

	offsets := make(map[int]int, valueCount)
	pos := afterCells + 8
	for n := 0; n < valueCount; n++ {
		entryHdr, ok := buf.Slice(data, pos, 8)
		if !ok {
			return nil, fmt.Errorf("%w: value entry header", ErrTruncatedImage)
		}
		idx32, _ := buf.U32BE(entryHdr[0:4])
		length32, _ := buf.U32BE(entryHdr[4:8])
		if int(length32) != valueSize {
			return nil, fmt.Errorf("%w: entry %d has length %d, header declares %d",
				ErrValueSizeMismatch, idx32, length32, valueSize)
		}
		payloadStart := pos + 8
		if !buf.Has(data, payloadStart, int(length32)) {
			return nil, fmt.Errorf("%w: value payload", ErrTruncatedImage)
		}
		offsets[int(idx32)] = payloadStart
		pos = payloadStart + int(length32)
	}

	if cacheCapacity < 0 {
		cacheCapacity = DefaultCacheCapacity
	}
	return &Mmap[V]{
		data:         data,
		cellsStart:   cellsStart,
		cellCount:    cellCount,
		valueOffsets: offsets,
		valueSize:    valueSize,
		deser:        deser,
		cache:        newDecodeCache[V](cacheCapacity),
	}, nil
}

// Close releases the underlying file mapping, if this Mmap owns one.
func (m *Mmap[V]) Close() error {
	if m.unmap == nil {
		return nil
	}
	return m.unmap()
}

func (m *Mmap[V]) cellAt(i int) (uint32, bool) {
	if i < 0 || i >= m.cellCount {
		return 0, false
	}
	b, ok := buf.Slice(m.data, m.cellsStart+i*4, 4)
	if !ok {
		return 0, false
	}
	v, _ := buf.U32BE(b)
	return v, true
}

func (m *Mmap[V]) BaseAt(i int) int32 {
	c, ok := m.cellAt(i)
	if !ok {
		return 0
	}
	return unpackBase(c)
}

func (m *Mmap[V]) SetBaseAt(int, int32) error { return ErrReadOnly }

func (m *Mmap[V]) CheckAt(i int) byte {
	c, ok := m.cellAt(i)
	if !ok {
		return Vacant
	}
	return unpackCheck(c)
}

func (m *Mmap[V]) SetCheckAt(int, byte) error { return ErrReadOnly }

func (m *Mmap[V]) BaseCheckSize() int { return m.cellCount }

func (m *Mmap[V]) ValueAt(i int) (V, bool) {
	if v, ok := m.cache.get(i); ok {
		return v, true
	}
	off, ok := m.valueOffsets[i]
	if !ok {
		var zero V
		return zero, false
	}
	raw, ok := buf.Slice(m.data, off, m.valueSize)
	if !ok {
		var zero V
		return zero, false
	}
	v, err := m.deser.Deserialize(raw)
	if err != nil {
		var zero V
		return zero, false
	}
	m.cache.put(i, v)
	return v, true
}

func (m *Mmap[V]) AddValueAt(int, V) error { return ErrReadOnly }

func (m *Mmap[V]) FillingRate() float64 {
	if m.cellCount == 0 {
		return 0
	}
	filled := 0
	for i := 0; i < m.cellCount; i++ {
		if m.CheckAt(i) != Vacant {
			filled++
		}
	}
	return float64(filled) / float64(m.cellCount)
}

// Serialize re-emits this image using ser, decoding every stored value
// (bypassing the cache, to avoid returning a partially-populated image
// after a small-capacity cache has evicted earlier entries' raw bytes —
// the cache only ever holds decoded values, so this just re-decodes all
// of them directly from the mapped bytes).
func (m *Mmap[V]) Serialize(w io.Writer, ser ValueSerializer[V]) error {
	cells := make([]uint32, m.cellCount)
	for i := range cells {
		cells[i], _ = m.cellAt(i)
	}
	values := make(map[int]V, len(m.valueOffsets))
	for idx, off := range m.valueOffsets {
		raw, ok := buf.Slice(m.data, off, m.valueSize)
		if !ok {
			return fmt.Errorf("%w: value %d", ErrTruncatedImage, idx)
		}
		v, err := m.deser.Deserialize(raw)
		if err != nil {
			return fmt.Errorf("storage: decode value %d: %w", idx, err)
		}
		values[idx] = v
	}
	return serializeImage(w, cells, values, ser)
}

// Clone returns a fresh Mmap view over the same mapped bytes with its own
// decode cache; the mapping itself is immutable so this is observationally
// a deep copy.
func (m *Mmap[V]) Clone() Storage[V] {
	return &Mmap[V]{
		data:         m.data,
		cellsStart:   m.cellsStart,
		cellCount:    m.cellCount,
		valueOffsets: m.valueOffsets,
		valueSize:    m.valueSize,
		deser:        m.deser,
		cache:        newDecodeCache[V](m.cache.capacity),
	}
}
