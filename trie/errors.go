package trie

import "errors"

// Sentinel errors returned by the trie and builder.
var (
	// ErrUnsortedEntries indicates the input entries were not strictly
	// lexicographically sorted by key.
	ErrUnsortedEntries = errors.New("trie: entries must be strictly sorted by key")

	// ErrDuplicateKey indicates the same key appeared twice in the input.
	ErrDuplicateKey = errors.New("trie: duplicate key")

	// ErrKeyContainsTerminator indicates a key contains the reserved 0x00
	// terminator byte.
	ErrKeyContainsTerminator = errors.New("trie: key contains reserved terminator byte 0x00")

	// ErrNoSuchPrefix indicates Subtrie was called with a prefix that no
	// stored key has.
	ErrNoSuchPrefix = errors.New("trie: no key has the given prefix")
)
