package trie_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ari-shimizu/dalt/trie"
	"github.com/ari-shimizu/dalt/trie/storage"
)

func buildFixture(t *testing.T) *trie.Trie[int32] {
	t.Helper()
	entries := []trie.Entry[int32]{
		{Key: []byte("UKI"), Value: 3},
		{Key: []byte("USA"), Value: 2},
		{Key: []byte("UTO"), Value: 1},
	}
	tr, err := trie.Build(entries)
	require.NoError(t, err)
	return tr
}

// S1: round-trip through an mmap-backed image.
func TestRoundTripViaMmap(t *testing.T) {
	tr := buildFixture(t)

	var buf bytes.Buffer
	require.NoError(t, tr.Serialize(&buf, storage.Int32Serializer{}))

	mm, err := storage.NewMmapFromBytes[int32](buf.Bytes(), 0, storage.Int32Serializer{}, -1)
	require.NoError(t, err)

	reopened := trie.FromStorage[int32](mm)

	v, ok := reopened.Find([]byte("UTO"))
	require.True(t, ok)
	assert.Equal(t, int32(1), v)

	_, ok = reopened.Find([]byte("U"))
	assert.False(t, ok)

	var got []int32
	it := reopened.Iter()
	for it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int32{3, 2, 1}, got)
}

// S2: sub-trie views.
func TestSubtrie(t *testing.T) {
	tr := buildFixture(t)

	sub, err := tr.Subtrie([]byte("U"))
	require.NoError(t, err)

	v, ok := sub.Find([]byte("TO"))
	require.True(t, ok)
	assert.Equal(t, int32(1), v)

	_, err = tr.Subtrie([]byte("V"))
	assert.ErrorIs(t, err, trie.ErrNoSuchPrefix)
}

// S5: mmap storage rejects mutation but keeps read-only inspection working.
func TestMmapStorageImmutable(t *testing.T) {
	tr := buildFixture(t)

	var buf bytes.Buffer
	require.NoError(t, tr.Serialize(&buf, storage.Int32Serializer{}))

	mm, err := storage.NewMmapFromBytes[int32](buf.Bytes(), 0, storage.Int32Serializer{}, -1)
	require.NoError(t, err)

	err = mm.SetBaseAt(0, 1)
	assert.ErrorIs(t, err, storage.ErrReadOnly)

	err = mm.SetCheckAt(0, 'a')
	assert.ErrorIs(t, err, storage.ErrReadOnly)

	err = mm.AddValueAt(0, 42)
	assert.ErrorIs(t, err, storage.ErrReadOnly)

	assert.Equal(t, tr.Storage().BaseCheckSize(), mm.BaseCheckSize())
	assert.GreaterOrEqual(t, mm.FillingRate(), 0.0)
}

func TestFindAndContains(t *testing.T) {
	tr := buildFixture(t)

	assert.True(t, tr.Contains([]byte("USA")))
	assert.False(t, tr.Contains([]byte("USB")))
	assert.Equal(t, 3, tr.Len())
	assert.False(t, tr.IsEmpty())
}

func TestEmptyTrie(t *testing.T) {
	tr, err := trie.Build[int32](nil)
	require.NoError(t, err)
	assert.True(t, tr.IsEmpty())
	assert.Equal(t, 0, tr.Len())

	_, ok := tr.Find([]byte("anything"))
	assert.False(t, ok)
}

func TestBuildRejectsUnsortedOrDuplicateOrTerminatorKeys(t *testing.T) {
	_, err := trie.Build([]trie.Entry[int32]{
		{Key: []byte("B"), Value: 1},
		{Key: []byte("A"), Value: 2},
	})
	assert.ErrorIs(t, err, trie.ErrUnsortedEntries)

	_, err = trie.Build([]trie.Entry[int32]{
		{Key: []byte("A"), Value: 1},
		{Key: []byte("A"), Value: 2},
	})
	assert.ErrorIs(t, err, trie.ErrDuplicateKey)

	_, err = trie.Build([]trie.Entry[int32]{
		{Key: []byte{'A', 0x00, 'B'}, Value: 1},
	})
	assert.ErrorIs(t, err, trie.ErrKeyContainsTerminator)
}

func TestBuildObserver(t *testing.T) {
	var added [][]byte
	done := false
	obs := observerFunc{
		onKeyAdded: func(k []byte) { added = append(added, append([]byte{}, k...)) },
		onDone:     func() { done = true },
	}

	_, err := trie.Build([]trie.Entry[int32]{
		{Key: []byte("A"), Value: 1},
		{Key: []byte("B"), Value: 2},
	}, trie.WithObserver(obs))
	require.NoError(t, err)

	assert.Equal(t, [][]byte{[]byte("A"), []byte("B")}, added)
	assert.True(t, done)
}

type observerFunc struct {
	onKeyAdded func([]byte)
	onDone     func()
}

func (o observerFunc) OnKeyAdded(k []byte) { o.onKeyAdded(k) }
func (o observerFunc) OnDone()             { o.onDone() }
