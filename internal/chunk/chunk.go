package chunk

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/snksoft/crc"
)

// Below is visually what a chunk in the PNG datastream looks like.
//
//	+------------+ +------------+ +------------+ +-------+
//	|   LENGTH   | | CHUNK TYPE | | CHUNK DATA | |  CRC  |
//	+------------+ +------------+ +------------+ +-------+
//	    4 bytes        4 bytes      LENGTH bytes   4 bytes
//	               |---------- CRC32'd -----------|
const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// Overhead is the number of framing bytes around a chunk's data.
	Overhead = lengthSize + typeSize + crcSize
)

// crcTable computes CRC-32/ISO-HDLC, the checksum the PNG specification uses.
var crcTable = crc.NewTable(crc.CRC32)

// Chunk is a single length-prefixed, typed and checksummed unit of a PNG
// datastream. A Chunk is immutable once built and its CRC always matches its
// type and data.
type Chunk struct {
	length    uint32    // Number of bytes in data, as declared in the datastream.
	chunkType ChunkType // A sequence of four bytes defining the chunk type.
	data      []byte    // Can be zero length.
	crc       uint32    // Calculated on chunk type and data, but NOT length.
}

// New builds a chunk from a type and payload, computing its CRC. The type is
// not validated.
func New(chunkType ChunkType, data []byte) Chunk {
	if data == nil {
		data = []byte{}
	}
	return Chunk{
		length:    uint32(len(data)),
		chunkType: chunkType,
		data:      data,
		crc:       checksum(chunkType, data),
	}
}

func checksum(chunkType ChunkType, data []byte) uint32 {
	tb := chunkType.Bytes()
	c := crcTable.InitCrc()
	c = crcTable.UpdateCrc(c, tb[:])
	c = crcTable.UpdateCrc(c, data)
	return crcTable.CRC32(c)
}

// Parse reads one chunk from the start of b and returns it together with the
// number of bytes it occupied. Bytes after the chunk are ignored.
func Parse(b []byte) (Chunk, int, error) {
	if len(b) < Overhead {
		return Chunk{}, 0, fmt.Errorf("%w: %d bytes available, need at least %d", ErrTruncated, len(b), Overhead)
	}
	length := binary.BigEndian.Uint32(b[:lengthSize])

	// Compare in 64 bits so a huge declared length cannot overflow.
	total := uint64(Overhead) + uint64(length)
	if uint64(len(b)) < total {
		return Chunk{}, 0, fmt.Errorf("%w: declared length %d needs %d bytes, %d available", ErrTruncated, length, total, len(b))
	}

	var tb [4]byte
	copy(tb[:], b[lengthSize:lengthSize+typeSize])
	chunkType := ChunkTypeFromBytes(tb)

	dataStart := lengthSize + typeSize
	dataEnd := dataStart + int(length)
	data := make([]byte, length)
	copy(data, b[dataStart:dataEnd])

	stored := binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize])
	if computed := checksum(chunkType, data); computed != stored {
		return Chunk{}, 0, fmt.Errorf("%w: %s: stored %d, calculated %d", ErrCRCMismatch, chunkType, stored, computed)
	}

	return Chunk{
		length:    length,
		chunkType: chunkType,
		data:      data,
		crc:       stored,
	}, int(total), nil
}

// FromBytes parses b, which must hold exactly one chunk.
func FromBytes(b []byte) (Chunk, error) {
	c, n, err := Parse(b)
	if err != nil {
		return Chunk{}, err
	}
	if n != len(b) {
		return Chunk{}, fmt.Errorf("chunk %s: %d trailing bytes", c.chunkType, len(b)-n)
	}
	return c, nil
}

// Length returns the number of bytes in the data field.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the chunk payload. Callers must not modify it.
func (c Chunk) Data() []byte {
	return c.data
}

// CRC returns the chunk checksum.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the payload as text.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s chunk", ErrNotUTF8, c.chunkType)
	}
	return string(c.data), nil
}

// Bytes returns the serialized chunk: length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	return c.AppendTo(make([]byte, 0, Overhead+len(c.data)))
}

// AppendTo appends the serialized chunk to dst and returns the extended slice.
func (c Chunk) AppendTo(dst []byte) []byte {
	tb := c.chunkType.Bytes()
	dst = binary.BigEndian.AppendUint32(dst, c.length)
	dst = append(dst, tb[:]...)
	dst = append(dst, c.data...)
	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// String is a diagnostic dump of the chunk. Its format is not stable.
func (c Chunk) String() string {
	return fmt.Sprintf("Chunk{Length: %d, Type: %s, Data: %v, Crc: %d}", c.length, c.chunkType, c.data, c.crc)
}
