// Package storage loads and saves whole PNG buffers by name.
//
// The codec packages never touch the file system; commands read a buffer
// through a Storage, hand it to png.Parse and write png.Bytes back.
package storage

import "errors"

// ErrNotFound is returned by Load when no data is stored under the name.
var ErrNotFound = errors.New("storage: not found")

// Storage abstracts where PNG buffers live.
// Implementations can use files or in-memory maps.
//
// All methods must be safe for concurrent use.
type Storage interface {
	// Load returns the complete contents stored under name.
	Load(name string) ([]byte, error)

	// Save replaces the contents stored under name.
	Save(name string, data []byte) error
}
