package storage

import "errors"

// Sentinel errors returned by Storage implementations.
var (
	// ErrReadOnly indicates a mutation was attempted against a read-only
	// backend (Mmap).
	ErrReadOnly = errors.New("storage: backend is read-only")

	// ErrNegativeIndex indicates a negative cell or value index was supplied.
	ErrNegativeIndex = errors.New("storage: negative index")

	// ErrTruncatedImage indicates a serialized trie image ended before a
	// declared section was fully read.
	ErrTruncatedImage = errors.New("storage: truncated image")

	// ErrNonFixedValueSize indicates an Mmap backend was asked to open an
	// image whose declared value size is not fixed; Mmap requires a fixed
	// value size to avoid a linear value-table scan per open.
	ErrNonFixedValueSize = errors.New("storage: mmap storage requires a fixed value size")

	// ErrValueSizeMismatch indicates the deserializer's declared fixed size
	// does not match the size recorded in the image header.
	ErrValueSizeMismatch = errors.New("storage: value size does not match image header")
)
