package chunk

import (
	"encoding/binary"
	"fmt"
)

const ihdrSize = 13

// IHDR is the image header carried by the first chunk of a PNG datastream.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// ParseIHDR decodes the header fields of an IHDR chunk.
func ParseIHDR(c Chunk) (IHDR, error) {
	if c.Type() != ChunkIHDR {
		return IHDR{}, fmt.Errorf("expected IHDR chunk, got %s", c.Type())
	}
	data := c.Data()
	if len(data) != ihdrSize {
		return IHDR{}, fmt.Errorf("invalid length for IHDR: %d", len(data))
	}
	return IHDR{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}, nil
}

// ColorTypeName returns the name the PNG specification gives the color type.
func (h IHDR) ColorTypeName() string {
	switch h.ColorType {
	case 0:
		return "Greyscale"
	case 2:
		return "Truecolor"
	case 3:
		return "Indexed-color"
	case 4:
		return "Greyscale with alpha"
	case 6:
		return "Truecolor with alpha"
	}
	return fmt.Sprintf("unknown(%d)", h.ColorType)
}
