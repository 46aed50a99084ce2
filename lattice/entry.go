// Package lattice builds a step-wise graph of candidate entries over an
// input partitioned into steps, computes Viterbi-style best predecessors,
// and enumerates the K cheapest whole paths under optional constraints.
package lattice

// Entry is a candidate occupying one step: an opaque key used for
// connection-cost lookups (shared by every synonym candidate at a step),
// a caller-defined value, and the entry's own cost.
type Entry struct {
	Key   []byte
	Value any
	Cost  int32
}

// BOSEOS is the distinguished entry standing for the lattice's virtual
// beginning and end of sequence on either side of a connection lookup.
var BOSEOS = Entry{}

// IsBOSEOS reports whether e is the distinguished boundary entry.
func (e Entry) IsBOSEOS() bool { return e.Key == nil && e.Value == nil }

// UnreachableCost is the sentinel cost FindConnection returns for an
// absent connection. It is set well below the int32 range's true maximum
// so that a handful of additions along a path cannot silently wrap around.
const UnreachableCost int32 = 1 << 28
