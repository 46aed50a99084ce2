package storage

// ValueSerializer encodes a stored value to bytes for the trie image.
// FixedSize reports the encoded length and true when every value of this
// type encodes to the same length (required by the Mmap backend); it
// reports (0, false) for variable-length encodings.
type ValueSerializer[V any] interface {
	Serialize(v V) []byte
	FixedSize() (size int, fixed bool)
}

// ValueDeserializer is the inverse of ValueSerializer, used to decode
// values read back from a trie image.
type ValueDeserializer[V any] interface {
	Deserialize(b []byte) (V, error)
}
