package chunk

import (
	"fmt"
	"unicode/utf8"
)

// Type is a 4-byte chunk type code such as "IHDR" or "ruSt".
// Types are comparable with ==.
type Type [TypeSize]byte

// Well-known types.
var (
	TypeIHDR = Type{'I', 'H', 'D', 'R'}
	TypeIDAT = Type{'I', 'D', 'A', 'T'}
	TypeIEND = Type{'I', 'E', 'N', 'D'}
)

// TypeFromBytes returns the type with the given bytes. No validation is done:
// chunks read from a file may carry any four bytes.
func TypeFromBytes(b [TypeSize]byte) Type {
	return Type(b)
}

// ParseType parses a type code supplied as text. Every character must be an
// ASCII letter and at least 4 bytes must be present; only the first 4 bytes
// are used.
func ParseType(s string) (Type, error) {
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return Type{}, ErrInvalidType
		}
	}
	if len(s) < TypeSize {
		return Type{}, ErrInvalidType
	}

	var t Type
	copy(t[:], s)
	return t, nil
}

// MustParseType is like ParseType but panics on error.
// Intended for package-level variables and tests.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(fmt.Sprintf("chunk: MustParseType(%q): %v", s, err))
	}
	return t
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Bytes returns the raw type bytes.
func (t Type) Bytes() [TypeSize]byte {
	return t
}

// IsCritical reports whether the chunk is critical (bit 5 of byte 0 clear).
func (t Type) IsCritical() bool {
	return t[0]&propertyBit == 0
}

// IsPublic reports whether the chunk is public (bit 5 of byte 1 clear).
func (t Type) IsPublic() bool {
	return t[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit (bit 5 of byte 2) is clear.
func (t Type) IsReservedBitValid() bool {
	return t[2]&propertyBit == 0
}

// IsSafeToCopy reports whether the chunk is safe to copy (bit 5 of byte 3 set).
func (t Type) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// IsValid reports whether the type is valid. The reserved bit is the only
// validity gate.
func (t Type) IsValid() bool {
	return t.IsReservedBitValid()
}

// Text returns the type as a string. It fails with ErrInvalidEncoding when
// the bytes are not valid UTF-8, which can only happen for types built with
// TypeFromBytes.
func (t Type) Text() (string, error) {
	if !utf8.Valid(t[:]) {
		return "", ErrInvalidEncoding
	}
	return string(t[:]), nil
}

// String implements fmt.Stringer. Types that are not valid UTF-8 are
// rendered quoted; use Text for matching.
func (t Type) String() string {
	s, err := t.Text()
	if err != nil {
		return fmt.Sprintf("%q", t[:])
	}
	return s
}
