package chunk

import "errors"

var (
	// ErrInvalidChunkType is returned when text cannot be used as a chunk type.
	ErrInvalidChunkType = errors.New("invalid chunk type")
	// ErrTruncated is returned when a buffer ends before the chunk it frames.
	ErrTruncated = errors.New("truncated chunk")
	// ErrCRCMismatch is returned when the stored CRC does not match the one
	// computed over the chunk type and data.
	ErrCRCMismatch = errors.New("chunk crc mismatch")
	// ErrNotUTF8 is returned when chunk data is requested as text but is not
	// valid UTF-8.
	ErrNotUTF8 = errors.New("chunk data is not valid utf-8")
	// ErrChunkNotFound is returned when a chunk type that must exist does not.
	ErrChunkNotFound = errors.New("chunk not found")
)
