// Package png holds a PNG datastream as an ordered sequence of chunks that
// can be inspected, extended and written back without touching pixel data.
package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"pngme.adpollak.net/internal/chunk"
)

// Signature is the eight-byte magic number that starts every PNG file.
// 137 80 78 71 13 10 26 10
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ErrInvalidSignature is returned by Parse when the input does not start
// with Signature.
var ErrInvalidSignature = errors.New("invalid png signature")

// Png is an ordered chunk stream with an optional leading signature.
// It is not safe for concurrent mutation.
type Png struct {
	signature []byte
	chunks    []chunk.Chunk
}

// New returns a stream with the standard signature holding chunks in order.
func New(chunks ...chunk.Chunk) *Png {
	return &Png{
		signature: Signature[:],
		chunks:    append([]chunk.Chunk(nil), chunks...),
	}
}

// Parse decodes a PNG file. The first eight bytes must be the PNG signature
// and the rest must be a sequence of well-formed chunks.
func Parse(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		n := min(len(b), len(Signature))
		return nil, fmt.Errorf("%w: got %x, expected %x", ErrInvalidSignature, b[:n], Signature)
	}
	chunks, err := parseChunks(b[len(Signature):], len(Signature))
	if err != nil {
		return nil, err
	}
	sig := make([]byte, len(Signature))
	copy(sig, b)
	return &Png{signature: sig, chunks: chunks}, nil
}

// ParseStream decodes a bare sequence of chunks with no signature.
func ParseStream(b []byte) (*Png, error) {
	chunks, err := parseChunks(b, 0)
	if err != nil {
		return nil, err
	}
	return &Png{chunks: chunks}, nil
}

// parseChunks walks b one chunk at a time. The first failure aborts the
// whole parse. base is the offset of b in the original input, for errors.
func parseChunks(b []byte, base int) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk
	for off := 0; off < len(b); {
		c, n, err := chunk.Parse(b[off:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(chunks), base+off, err)
		}
		chunks = append(chunks, c)
		off += n
	}
	return chunks, nil
}

// Signature returns the leading signature bytes, or nil for a bare stream.
func (p *Png) Signature() []byte {
	return p.signature
}

// AppendChunk adds c at the end of the stream. Chunks of the same type may
// repeat.
func (p *Png) AppendChunk(c chunk.Chunk) {
	p.chunks = append(p.chunks, c)
}

// Append builds a chunk from chunkType and data and appends it.
func (p *Png) Append(chunkType chunk.ChunkType, data []byte) chunk.Chunk {
	c := chunk.New(chunkType, data)
	p.AppendChunk(c)
	return c
}

func (p *Png) index(chunkType string) int {
	for i, c := range p.chunks {
		if c.Type().String() == chunkType {
			return i
		}
	}
	return -1
}

// ChunkByType returns the first chunk whose type renders as chunkType.
// The boolean is false when there is none.
func (p *Png) ChunkByType(chunkType string) (chunk.Chunk, bool) {
	i := p.index(chunkType)
	if i < 0 {
		return chunk.Chunk{}, false
	}
	return p.chunks[i], true
}

// RemoveChunk removes and returns the first chunk whose type renders as
// chunkType. It fails with chunk.ErrChunkNotFound if there is none.
func (p *Png) RemoveChunk(chunkType string) (chunk.Chunk, error) {
	i := p.index(chunkType)
	if i < 0 {
		return chunk.Chunk{}, fmt.Errorf("%w: %s", chunk.ErrChunkNotFound, chunkType)
	}
	removed := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return removed, nil
}

// Chunks returns the chunks in stream order. The returned slice is a copy.
func (p *Png) Chunks() []chunk.Chunk {
	return append([]chunk.Chunk(nil), p.chunks...)
}

// Len returns the number of bytes Bytes would produce.
func (p *Png) Len() int {
	n := len(p.signature)
	for _, c := range p.chunks {
		n += chunk.Overhead + len(c.Data())
	}
	return n
}

// Bytes serializes the signature followed by every chunk in order.
func (p *Png) Bytes() []byte {
	b := make([]byte, 0, p.Len())
	b = append(b, p.signature...)
	for _, c := range p.chunks {
		b = c.AppendTo(b)
	}
	return b
}

// WriteTo writes the serialized stream to w.
func (p *Png) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}
