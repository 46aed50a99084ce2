// Package trie implements a static, double-array trie mapping
// byte-sequence keys to arbitrary values. Build constructs a trie from a
// sorted, frozen key/value list; lookups, sub-trie views, and in-order
// iteration are read-only from then on. Serialize/OpenMmap round-trip a
// trie through the on-disk image format in spec §6.
package trie

import (
	"io"

	"github.com/ari-shimizu/dalt/trie/storage"
)

// Trie is a read-only map from byte-sequence keys to values V, backed by
// a double-array storage.Storage. A Trie returned by Subtrie shares its
// parent's storage; mutating one through storage.Shared is visible to
// the other, but Trie itself exposes no mutation.
type Trie[V any] struct {
	storage storage.Storage[V]
	root    int
	size    int
}

// FromStorage wraps an already-populated storage.Storage (e.g. a
// storage.Mmap opened from a previously serialized image) as a Trie
// rooted at index 0. size is unknown in this path and Len reports -1;
// callers that need an exact count should re-derive it via Iter.
func FromStorage[V any](st storage.Storage[V]) *Trie[V] {
	return &Trie[V]{storage: st, root: 0, size: -1}
}

// transition returns the state reached from state s on byte b, and
// whether that transition is valid (CHECK matches b). Byte storage.Vacant
// never transitions, since that CHECK value marks an unused cell.
func transition[V any](st storage.Storage[V], s int, b byte) (int, bool) {
	if b == storage.Vacant {
		return 0, false
	}
	base := st.BaseAt(s)
	next := int(base) + int(b)
	if next < 0 {
		return 0, false
	}
	if st.CheckAt(next) != b {
		return 0, false
	}
	return next, true
}

// walk follows key from the trie's root, returning the final state and
// whether every byte transitioned successfully.
func (t *Trie[V]) walk(key []byte) (int, bool) {
	cur := t.root
	for _, b := range key {
		next, ok := transition(t.storage, cur, b)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Find returns the value stored for key, if key was inserted at build time.
func (t *Trie[V]) Find(key []byte) (V, bool) {
	var zero V
	state, ok := t.walk(key)
	if !ok {
		return zero, false
	}
	leaf, ok := transition(t.storage, state, terminator)
	if !ok {
		return zero, false
	}
	valueIdx := t.storage.BaseAt(leaf)
	return t.storage.ValueAt(int(valueIdx))
}

// Contains reports whether key was inserted at build time.
func (t *Trie[V]) Contains(key []byte) bool {
	_, ok := t.Find(key)
	return ok
}

// Len returns the number of stored keys, or -1 if unknown (see FromStorage).
func (t *Trie[V]) Len() int { return t.size }

// IsEmpty reports whether the trie has no keys. When Len is unknown it
// conservatively checks whether any key at all can be iterated.
func (t *Trie[V]) IsEmpty() bool {
	if t.size >= 0 {
		return t.size == 0
	}
	it := t.Iter()
	return !it.Next()
}

// Subtrie returns a view rooted at the state reached by traversing prefix
// (without a terminator), sharing this trie's storage. It returns
// ErrNoSuchPrefix if no stored key has prefix as a prefix.
func (t *Trie[V]) Subtrie(prefix []byte) (*Trie[V], error) {
	state, ok := t.walk(prefix)
	if !ok {
		return nil, ErrNoSuchPrefix
	}
	return &Trie[V]{storage: t.storage, root: state, size: -1}, nil
}

// Serialize writes this trie's storage as the on-disk image described in
// spec §6, encoding each value with ser.
func (t *Trie[V]) Serialize(w io.Writer, ser storage.ValueSerializer[V]) error {
	return t.storage.Serialize(w, ser)
}

// Storage exposes the underlying storage.Storage, e.g. so callers can
// inspect FillingRate or Clone it.
func (t *Trie[V]) Storage() storage.Storage[V] { return t.storage }
