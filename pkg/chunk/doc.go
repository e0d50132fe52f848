// Package chunk implements PNG chunks and chunk type codes.
//
// A chunk is laid out on the wire as:
//
//	length (4 bytes, big-endian) | type (4 bytes) | data (length bytes) | crc (4 bytes, big-endian)
//
// The CRC is CRC-32/IEEE computed over the type and data fields only.
//
// Each of the four type bytes carries one property in bit 5 (0x20):
//
//	byte 0: ancillary (1) or critical (0)
//	byte 1: private (1) or public (0)
//	byte 2: reserved, must be 0
//	byte 3: safe-to-copy (1) or unsafe-to-copy (0)
//
// Parsing a chunk from bytes trusts the type bytes as found; only ParseType,
// used for codes supplied by a user, requires ASCII letters.
package chunk
