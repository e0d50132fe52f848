// Package png implements the PNG container: the 8-byte signature followed by
// an ordered sequence of chunks.
//
// Parse is all-or-nothing. A chunk that fails to parse invalidates the whole
// input, since nothing after a bad length field can be trusted.
//
// Chunk types are matched by their text form, so lookups take the 4-character
// codes users type on the command line:
//
//	p, err := png.Parse(data)
//	if err != nil {
//	    return err
//	}
//	if c := p.ChunkByType("ruSt"); c != nil {
//	    msg, _ := c.Text()
//	    fmt.Println(msg)
//	}
package png

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/backkem/pngme/pkg/chunk"
)

// SignatureSize is the size of the PNG signature.
const SignatureSize = 8

// Signature is the fixed PNG file signature.
var Signature = [SignatureSize]byte{137, 80, 78, 71, 13, 10, 26, 10}

// PNG is a parsed PNG container.
// A PNG is not safe for concurrent mutation.
type PNG struct {
	chunks []*chunk.Chunk
}

// FromChunks creates a container holding the given chunks in order.
func FromChunks(chunks []*chunk.Chunk) *PNG {
	p := &PNG{chunks: make([]*chunk.Chunk, len(chunks))}
	copy(p.chunks, chunks)
	return p
}

// Parse decodes a complete PNG buffer, verifying the signature and the CRC of
// every chunk.
func Parse(data []byte) (*PNG, error) {
	if len(data) < SignatureSize || !bytes.Equal(data[:SignatureSize], Signature[:]) {
		return nil, ErrBadSignature
	}

	p := &PNG{}
	offset := SignatureSize
	for offset < len(data) {
		c, err := chunk.Parse(data[offset:])
		if err != nil {
			return nil, &ChunkError{Index: len(p.chunks), Offset: offset, Err: err}
		}
		p.chunks = append(p.chunks, c)
		offset += c.Size()
	}

	return p, nil
}

// Header returns the signature.
func (p *PNG) Header() [SignatureSize]byte {
	return Signature
}

// Chunks returns the chunks in file order. The returned slice must not be
// modified.
func (p *PNG) Chunks() []*chunk.Chunk {
	return p.chunks
}

// AppendChunk adds c to the end of the sequence. No ordering or uniqueness
// checks are done.
func (p *PNG) AppendChunk(c *chunk.Chunk) {
	p.chunks = append(p.chunks, c)
}

// InsertChunk adds c before a trailing IEND chunk, or at the end when the
// sequence does not end with IEND.
func (p *PNG) InsertChunk(c *chunk.Chunk) {
	n := len(p.chunks)
	if n == 0 || p.chunks[n-1].Type() != chunk.TypeIEND {
		p.AppendChunk(c)
		return
	}
	p.chunks = append(p.chunks, nil)
	copy(p.chunks[n:], p.chunks[n-1:n])
	p.chunks[n-1] = c
}

// ChunkByType returns the first chunk whose type equals code, or nil.
func (p *PNG) ChunkByType(code string) *chunk.Chunk {
	if i := p.index(code); i >= 0 {
		return p.chunks[i]
	}
	return nil
}

// ChunksByType returns every chunk whose type equals code, in file order.
func (p *PNG) ChunksByType(code string) []*chunk.Chunk {
	var result []*chunk.Chunk
	for _, c := range p.chunks {
		if matches(c, code) {
			result = append(result, c)
		}
	}
	return result
}

// RemoveChunk removes and returns the first chunk whose type equals code.
// The order of the remaining chunks is preserved.
func (p *PNG) RemoveChunk(code string) (*chunk.Chunk, error) {
	i := p.index(code)
	if i < 0 {
		return nil, ErrChunkNotFound
	}
	c := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return c, nil
}

// Size returns the encoded size in bytes.
func (p *PNG) Size() int {
	size := SignatureSize
	for _, c := range p.chunks {
		size += c.Size()
	}
	return size
}

// Bytes encodes the container: signature followed by each chunk.
func (p *PNG) Bytes() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.AppendTo(buf)
	}
	return buf
}

// String returns a debug rendering of the signature and all chunks.
func (p *PNG) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PNG {\n  Signature: %v\n  Chunks: [\n", Signature)
	for _, c := range p.chunks {
		for _, line := range strings.Split(c.String(), "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("  ]\n}")
	return b.String()
}

func (p *PNG) index(code string) int {
	for i, c := range p.chunks {
		if matches(c, code) {
			return i
		}
	}
	return -1
}

// matches compares the text form of the chunk type; types that are not valid
// UTF-8 never match.
func matches(c *chunk.Chunk, code string) bool {
	s, err := c.Type().Text()
	return err == nil && s == code
}
