package storage

import "io"

// Shared wraps a Memory storage so that Clone returns an alias: every
// clone observes writes made through any other clone. Callers are
// responsible for serializing their own writes; Shared adds no locking.
type Shared[V any] struct {
	inner *Memory[V]
}

// NewShared returns a Shared storage backed by a fresh Memory instance.
func NewShared[V any]() *Shared[V] {
	return &Shared[V]{inner: NewMemory[V]()}
}

func (s *Shared[V]) BaseAt(i int) int32             { return s.inner.BaseAt(i) }
func (s *Shared[V]) SetBaseAt(i int, v int32) error { return s.inner.SetBaseAt(i, v) }
func (s *Shared[V]) CheckAt(i int) byte             { return s.inner.CheckAt(i) }
func (s *Shared[V]) SetCheckAt(i int, v byte) error { return s.inner.SetCheckAt(i, v) }
func (s *Shared[V]) BaseCheckSize() int             { return s.inner.BaseCheckSize() }
func (s *Shared[V]) ValueAt(i int) (V, bool)        { return s.inner.ValueAt(i) }
func (s *Shared[V]) AddValueAt(i int, v V) error    { return s.inner.AddValueAt(i, v) }
func (s *Shared[V]) FillingRate() float64           { return s.inner.FillingRate() }

func (s *Shared[V]) Serialize(w io.Writer, ser ValueSerializer[V]) error {
	return s.inner.Serialize(w, ser)
}

// Clone returns an alias sharing the same underlying Memory instance.
func (s *Shared[V]) Clone() Storage[V] {
	return &Shared[V]{inner: s.inner}
}
