package trie

import (
	"bytes"
	"fmt"

	"github.com/ari-shimizu/dalt/trie/storage"
)

// DefaultDensityFactor is the builder's default time/space tradeoff for
// hunting a free BASE value: it is the number of failed probes after which
// the search stride doubles, so a higher factor keeps the search closer to
// the minimal base for longer, trading build time for a denser array.
const DefaultDensityFactor = 1000

// terminator is appended to every key during build and lookup so a leaf
// state's BASE can encode the value index (spec §4.2).
const terminator = 0x00

// Entry is one (key, value) pair supplied to Build. Entries must be
// strictly sorted by key and contain no duplicate keys.
type Entry[V any] struct {
	Key   []byte
	Value V
}

// BuildObserver receives progress callbacks during Build: one OnKeyAdded
// per accepted key, then a final OnDone once the trie is complete.
type BuildObserver interface {
	OnKeyAdded(key []byte)
	OnDone()
}

// noopObserver is used when the caller supplies none.
type noopObserver struct{}

func (noopObserver) OnKeyAdded([]byte) {}
func (noopObserver) OnDone()           {}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	densityFactor int
	observer      BuildObserver
}

// WithDensityFactor overrides DefaultDensityFactor.
func WithDensityFactor(f int) BuildOption {
	return func(c *buildConfig) {
		if f > 0 {
			c.densityFactor = f
		}
	}
}

// WithObserver registers a BuildObserver.
func WithObserver(o BuildObserver) BuildOption {
	return func(c *buildConfig) { c.observer = o }
}

// Build constructs a minimal BASE/CHECK double-array trie from a strictly
// sorted, duplicate-free list of (key, value) entries. Keys must not
// contain the 0x00 terminator byte.
func Build[V any](entries []Entry[V], opts ...BuildOption) (*Trie[V], error) {
	cfg := buildConfig{densityFactor: DefaultDensityFactor, observer: noopObserver{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	for i, e := range entries {
		if bytes.IndexByte(e.Key, terminator) >= 0 {
			return nil, fmt.Errorf("%w: key %q", ErrKeyContainsTerminator, e.Key)
		}
		if i > 0 {
			cmp := bytes.Compare(entries[i-1].Key, e.Key)
			if cmp == 0 {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
			}
			if cmp > 0 {
				return nil, fmt.Errorf("%w: %q before %q", ErrUnsortedEntries, entries[i-1].Key, e.Key)
			}
		}
	}

	st := storage.NewMemory[V]()
	b := &builder[V]{storage: st, densityFactor: cfg.densityFactor, nextBase: int32(1)}

	termKeys := make([][]byte, len(entries))
	for i, e := range entries {
		termKeys[i] = append(append([]byte{}, e.Key...), terminator)
	}

	if len(entries) > 0 {
		if err := st.SetCheckAt(0, storage.Vacant); err != nil {
			return nil, err
		}
		b.build(0, 0, len(entries), 0, termKeys, entries)
	}

	for _, e := range entries {
		cfg.observer.OnKeyAdded(e.Key)
	}
	cfg.observer.OnDone()

	return &Trie[V]{storage: st, root: 0, size: len(entries)}, nil
}

// builder holds the mutable state threaded through recursive construction.
type builder[V any] struct {
	storage       *storage.Memory[V]
	densityFactor int
	nextBase      int32 // monotonic lower bound for the next free-base search
	nextValueIdx  int
}

// build assigns children of the state rooted at stateIdx, covering the key
// range [lo, hi) which all share the prefix key[0:depth].
func (b *builder[V]) build(stateIdx, lo, hi, depth int, keys [][]byte, entries []Entry[V]) {
	// Collect distinct branching bytes at this depth, in ascending order
	// (keys are pre-sorted, so equal bytes are already contiguous).
	type child struct {
		b        byte
		lo, hi   int
	}
	var children []child
	i := lo
	for i < hi {
		cb := keys[i][depth]
		j := i + 1
		for j < hi && keys[j][depth] == cb {
			j++
		}
		children = append(children, child{b: cb, lo: i, hi: j})
		i = j
	}

	bytesOnly := make([]byte, len(children))
	for k, c := range children {
		bytesOnly[k] = c.b
	}
	base := b.findBase(bytesOnly)
	_ = b.storage.SetBaseAt(stateIdx, base)

	for _, c := range children {
		childIdx := int(base) + int(c.b)
		_ = b.storage.SetCheckAt(childIdx, c.b)

		if c.b == terminator {
			// c.hi == c.lo+1: the terminator byte only ever completes one
			// key, since keys are distinct and the terminator is unique
			// per key's final byte.
			valueIdx := b.nextValueIdx
			b.nextValueIdx++
			_ = b.storage.SetBaseAt(childIdx, int32(valueIdx))
			_ = b.storage.AddValueAt(valueIdx, entries[c.lo].Value)
			continue
		}
		b.build(childIdx, c.lo, c.hi, depth+1, keys, entries)
	}
}

// findBase returns the smallest BASE such that base+b is vacant for every
// byte b in children. The search starts from a monotonically advancing
// lower bound so repeated calls do not rescan cells already claimed by
// earlier siblings; every densityFactor failed probes the stride doubles,
// so once a doubling has happened the result may skip over smaller free
// bases.
func (b *builder[V]) findBase(children []byte) int32 {
	if len(children) == 0 {
		return b.nextBase
	}
	candidate := b.nextBase
	var step int32 = 1
	failures := 0
	for {
		ok := true
		for _, c := range children {
			if b.storage.CheckAt(int(candidate)+int(c)) != storage.Vacant {
				ok = false
				break
			}
		}
		if ok {
			b.nextBase = candidate + 1
			return candidate
		}
		failures++
		// After densityFactor consecutive collisions, widen the stride to
		// skip congested regions faster; a larger densityFactor therefore
		// keeps the exhaustive (minimal-base) search going longer before
		// trading accuracy for speed.
		if failures%b.densityFactor == 0 {
			step *= 2
		}
		candidate += step
	}
}
