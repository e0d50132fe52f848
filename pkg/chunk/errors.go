package chunk

import "errors"

var (
	// ErrInvalidType is returned when a chunk type code contains non-alphabetic
	// characters or is shorter than 4 bytes.
	ErrInvalidType = errors.New("chunk: invalid chunk type code")

	// ErrTruncated is returned when the input ends before the declared
	// length, type or CRC can be read.
	ErrTruncated = errors.New("chunk: data truncated")

	// ErrChecksumMismatch is returned when the stored CRC does not match the
	// CRC computed over the type and data.
	ErrChecksumMismatch = errors.New("chunk: checksum mismatch")

	// ErrInvalidEncoding is returned when bytes requested as text are not
	// valid UTF-8.
	ErrInvalidEncoding = errors.New("chunk: invalid UTF-8")

	// ErrPayloadTooLarge is returned when data does not fit the 32-bit
	// length field.
	ErrPayloadTooLarge = errors.New("chunk: payload exceeds maximum length")
)

// Wire format sizes.
const (
	// LengthSize is the size of the big-endian length field.
	LengthSize = 4

	// TypeSize is the size of the chunk type code.
	TypeSize = 4

	// CRCSize is the size of the big-endian CRC field.
	CRCSize = 4

	// OverheadSize is the number of bytes a chunk occupies besides its data.
	// Length (4) + Type (4) + CRC (4) = 12
	OverheadSize = LengthSize + TypeSize + CRCSize

	// MaxLength is the largest payload the length field can describe.
	MaxLength = 1<<32 - 1
)

// propertyBit is bit 5 of each type byte, the lowercase bit in ASCII.
const propertyBit uint8 = 0x20
