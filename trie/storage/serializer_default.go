package storage

import (
	"encoding/binary"
	"fmt"
)

// StringSerializer serializes/deserializes string values verbatim as their
// UTF-8 bytes. Strings have no fixed size.
type StringSerializer struct{}

func (StringSerializer) Serialize(v string) []byte { return []byte(v) }

func (StringSerializer) FixedSize() (int, bool) { return 0, false }

func (StringSerializer) Deserialize(b []byte) (string, error) {
	return string(b), nil
}

// Int32Serializer serializes/deserializes int32 values as 4 fixed bytes,
// big-endian, matching the rest of the on-disk image format (spec §6).
type Int32Serializer struct{}

func (Int32Serializer) Serialize(v int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	return b
}

func (Int32Serializer) FixedSize() (int, bool) { return 4, true }

func (Int32Serializer) Deserialize(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: int32 value", ErrValueSizeMismatch)
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// Int64Serializer serializes/deserializes int64 values as 8 fixed bytes,
// big-endian.
type Int64Serializer struct{}

func (Int64Serializer) Serialize(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func (Int64Serializer) FixedSize() (int, bool) { return 8, true }

func (Int64Serializer) Deserialize(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: int64 value", ErrValueSizeMismatch)
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
