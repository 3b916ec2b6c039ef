package chunk

import (
	"fmt"
	"strings"
)

// propertyBit is bit 5 of each type byte. In ASCII letters it is the
// difference between upper and lower case.
const propertyBit = 0x20

// ChunkType is the four-byte tag that identifies a chunk. Its properties are
// encoded in the case of each byte:
//
//	byte 0: ancillary bit     (uppercase = critical)
//	byte 1: private bit       (uppercase = public)
//	byte 2: reserved bit      (must be uppercase)
//	byte 3: safe-to-copy bit  (lowercase = safe to copy)
type ChunkType struct {
	b [4]byte
}

// ChunkTypeFromBytes wraps four raw bytes as read from a datastream. It never
// fails; use IsValid when the distinction matters.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType{b: b}
}

// ValidChunkType is like ChunkTypeFromBytes but rejects types that are not
// valid.
func ValidChunkType(b [4]byte) (ChunkType, error) {
	ct := ChunkType{b: b}
	if !ct.IsValid() {
		return ChunkType{}, fmt.Errorf("%w: %q", ErrInvalidChunkType, ct.String())
	}
	return ct, nil
}

// FromString builds a ChunkType from exactly four ASCII letters. The result
// is not checked for the reserved bit, so "Rust" parses but is not valid.
func FromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q is %d bytes, want 4", ErrInvalidChunkType, s, len(s))
	}
	var ct ChunkType
	for i := 0; i < 4; i++ {
		c := s[i]
		if !isASCIILetter(c) {
			return ChunkType{}, fmt.Errorf("%w: %q contains non-alphabetic byte %#x", ErrInvalidChunkType, s, c)
		}
		ct.b[i] = c
	}
	return ct, nil
}

// MustFromString is like FromString but panics on error. It is meant for
// package-level constants.
func MustFromString(s string) ChunkType {
	ct, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Bytes returns the four type bytes.
func (c ChunkType) Bytes() [4]byte {
	return c.b
}

// IsCritical reports whether the chunk is needed to display the image.
func (c ChunkType) IsCritical() bool {
	return c.b[0]&propertyBit == 0
}

// IsPublic reports whether the type is part of the PNG specification or a
// registered public extension.
func (c ChunkType) IsPublic() bool {
	return c.b[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit is clear, as it must be
// for every conforming chunk.
func (c ChunkType) IsReservedBitValid() bool {
	return c.b[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors that do not recognise the chunk may
// copy it into a modified file.
func (c ChunkType) IsSafeToCopy() bool {
	return c.b[3]&propertyBit != 0
}

// IsValid reports whether all bytes are ASCII and the reserved bit is valid.
func (c ChunkType) IsValid() bool {
	for _, b := range c.b {
		if b >= 0x80 {
			return false
		}
	}
	return c.IsReservedBitValid()
}

// String returns the type bytes as text. Invalid UTF-8 is replaced rather
// than rejected.
func (c ChunkType) String() string {
	return strings.ToValidUTF8(string(c.b[:]), "�")
}
