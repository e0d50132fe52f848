package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf8"
)

// Chunk is a single length-prefixed, typed, checksummed PNG chunk.
// A Chunk owns its data; it is never shared with the buffer it was parsed from.
type Chunk struct {
	length uint32
	typ    Type
	data   []byte
	crc    uint32
}

// Checksum returns the CRC-32/IEEE of the type followed by the data.
func Checksum(t Type, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, t[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// New creates a chunk with the given type and data, computing its length and
// CRC. The data is copied.
// Returns ErrPayloadTooLarge if data does not fit the 32-bit length field.
func New(t Type, data []byte) (*Chunk, error) {
	if err := checkLength(uint64(len(data))); err != nil {
		return nil, err
	}

	c := &Chunk{
		length: uint32(len(data)),
		typ:    t,
		data:   make([]byte, len(data)),
	}
	copy(c.data, data)
	c.crc = Checksum(t, c.data)

	return c, nil
}

// checkLength rejects data lengths the 32-bit length field cannot hold.
func checkLength(n uint64) error {
	if n > MaxLength {
		return ErrPayloadTooLarge
	}
	return nil
}

// Parse decodes one chunk from the start of data and verifies its CRC.
// Bytes after the chunk are ignored; use Size to find where the next chunk
// starts.
func Parse(data []byte) (*Chunk, error) {
	if len(data) < OverheadSize {
		return nil, ErrTruncated
	}

	length := binary.BigEndian.Uint32(data[0:LengthSize])

	var t Type
	copy(t[:], data[LengthSize:LengthSize+TypeSize])

	// Computed in 64 bits so a huge declared length cannot wrap.
	if uint64(OverheadSize)+uint64(length) > uint64(len(data)) {
		return nil, ErrTruncated
	}

	dataStart := LengthSize + TypeSize
	dataEnd := dataStart + int(length)

	c := &Chunk{
		length: length,
		typ:    TypeFromBytes(t),
		data:   make([]byte, length),
		crc:    binary.BigEndian.Uint32(data[dataEnd : dataEnd+CRCSize]),
	}
	copy(c.data, data[dataStart:dataEnd])

	if Checksum(c.typ, c.data) != c.crc {
		return nil, ErrChecksumMismatch
	}

	return c, nil
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk type.
func (c *Chunk) Type() Type {
	return c.typ
}

// Data returns the chunk data. The returned slice must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the stored checksum.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Size returns the encoded size of the chunk in bytes.
func (c *Chunk) Size() int {
	return OverheadSize + int(c.length)
}

// Text returns the data interpreted as UTF-8 text.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidEncoding
	}
	return string(c.data), nil
}

// Bytes encodes the chunk to wire format.
func (c *Chunk) Bytes() []byte {
	return c.AppendTo(make([]byte, 0, c.Size()))
}

// AppendTo appends the wire encoding of the chunk to dst and returns the
// extended slice.
func (c *Chunk) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, c.length)
	dst = append(dst, c.typ[:]...)
	dst = append(dst, c.data...)
	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// String returns a multi-line debug rendering of the chunk.
func (c *Chunk) String() string {
	var b strings.Builder
	b.WriteString("Chunk {\n")
	fmt.Fprintf(&b, "  Length: %d\n", c.length)
	fmt.Fprintf(&b, "  Type: %s\n", c.typ)
	fmt.Fprintf(&b, "  Data: %d bytes %q\n", len(c.data), preview(c.data))
	fmt.Fprintf(&b, "  CRC: 0x%08x\n", c.crc)
	b.WriteString("}")
	return b.String()
}

// debugPreviewSize bounds how much data String shows.
const debugPreviewSize = 32

func preview(data []byte) []byte {
	if len(data) > debugPreviewSize {
		return data[:debugPreviewSize]
	}
	return data
}
