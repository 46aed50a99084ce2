package trie

import "github.com/ari-shimizu/dalt/trie/storage"

// Iterator performs a lazy in-order (lexicographic) walk over a Trie's
// stored keys and values. Use like:
//
//	it := t.Iter()
//	for it.Next() {
//	    use(it.Key(), it.Value())
//	}
type Iterator[V any] struct {
	st     storage.Storage[V]
	stack  []frame
	keyBuf []byte
	key    []byte
	value  V
}

type frame struct {
	state    int
	nextByte int
	keyLen   int
}

// Iter returns a fresh Iterator positioned before the first key.
func (t *Trie[V]) Iter() *Iterator[V] {
	return &Iterator[V]{st: t.storage, stack: []frame{{state: t.root}}}
}

// Next advances to the next key in lexicographic order, returning false
// once every stored key has been visited exactly once.
func (it *Iterator[V]) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.nextByte > 0xFF {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		b := byte(top.nextByte)
		top.nextByte++

		next, ok := transition(it.st, top.state, b)
		if !ok {
			continue
		}
		if b == terminator {
			valueIdx := it.st.BaseAt(next)
			v, ok := it.st.ValueAt(int(valueIdx))
			if !ok {
				continue
			}
			it.key = append(it.key[:0], it.keyBuf[:top.keyLen]...)
			it.value = v
			return true
		}

		newLen := top.keyLen + 1
		if len(it.keyBuf) < newLen {
			it.keyBuf = append(it.keyBuf, b)
		} else {
			it.keyBuf = append(it.keyBuf[:top.keyLen], b)
		}
		it.stack = append(it.stack, frame{state: next, keyLen: newLen})
	}
	return false
}

// Key returns the key for the entry Next most recently positioned on.
func (it *Iterator[V]) Key() []byte { return it.key }

// Value returns the value for the entry Next most recently positioned on.
func (it *Iterator[V]) Value() V { return it.value }
