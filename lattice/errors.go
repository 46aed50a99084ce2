package lattice

import "errors"

// Sentinel errors returned by the lattice and N-best iterator.
var (
	// ErrInvalidArgument indicates an unknown step key to push_back or an
	// out-of-range step index to NodesAt.
	ErrInvalidArgument = errors.New("lattice: invalid argument")

	// ErrNoMorePaths indicates Next was called on an exhausted NBestIterator.
	ErrNoMorePaths = errors.New("lattice: no more paths")
)
