package png

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSignature is returned when the input does not start with the PNG signature.
	ErrBadSignature = errors.New("png: invalid signature")

	// ErrChunkNotFound is returned when no chunk of the requested type exists.
	ErrChunkNotFound = errors.New("png: chunk not found")
)

// ChunkError reports a chunk that failed to parse. It unwraps to the
// underlying chunk error, so errors.Is(err, chunk.ErrChecksumMismatch) works.
type ChunkError struct {
	// Index is the position of the chunk in the sequence.
	Index int

	// Offset is the byte offset of the chunk within the input.
	Offset int

	Err error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("png: chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
