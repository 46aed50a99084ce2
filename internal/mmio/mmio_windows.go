//go:build windows

package mmio

import "os"

// Map reads the entire file into memory; Windows file mapping is not wired
// here since the spec's mmap backend only needs a stable read-only byte view.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
