//go:build unix

// Package mmio provides platform-specific helpers for memory-mapping trie
// image files read-only.
package mmio

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map opens path and maps it read-only, returning the mapped bytes and a
// close function. The mapping starts at file offset 0; callers index into
// the returned slice using their own image offset.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; the mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmio: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	closed := false
	cleanup := func() error {
		if closed {
			return nil
		}
		closed = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			return nil // double-unmap is a no-op for callers
		}
		return err
	}
	return data, cleanup, nil
}
