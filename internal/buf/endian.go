// Package buf contains endian-safe, bounds-checked decoding helpers used
// by the trie image reader/writer.
//
// The on-disk trie image (spec §6) is big-endian throughout; these helpers
// never panic on short input, returning a zero value and an ok flag instead.
package buf

import "encoding/binary"

// U32BE reads a big-endian uint32 from the first 4 bytes of b.
// Reports ok=false if b is too short.
func U32BE(b []byte) (uint32, bool) {
	if len(b) < 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

// PutU32BE writes v as a big-endian uint32 into the first 4 bytes of b.
// Reports ok=false if b is too short.
func PutU32BE(b []byte, v uint32) bool {
	if len(b) < 4 {
		return false
	}
	binary.BigEndian.PutUint32(b, v)
	return true
}
