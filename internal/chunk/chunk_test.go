package chunk

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testMessage = "This is where your secret message will be!"
	testCRC     = uint32(2882656334)
)

func rawChunk(length uint32, chunkType string, data []byte, crc uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, length)
	b = append(b, chunkType...)
	b = append(b, data...)
	return binary.BigEndian.AppendUint32(b, crc)
}

func testingChunk(t *testing.T) Chunk {
	t.Helper()
	c, err := FromBytes(rawChunk(42, "RuSt", []byte(testMessage), testCRC))
	require.NoError(t, err)
	return c
}

func TestChunk_New(t *testing.T) {
	c := New(MustFromString("RuSt"), []byte(testMessage))
	require.Equal(t, uint32(42), c.Length())
	require.Equal(t, testCRC, c.CRC())
	require.Equal(t, "RuSt", c.Type().String())
	require.Equal(t, []byte(testMessage), c.Data())
}

func TestChunk_NewEmpty(t *testing.T) {
	c := New(ChunkIEND, nil)
	require.Equal(t, uint32(0), c.Length())
	require.Equal(t, []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}, c.Bytes())
}

func TestChunk_Parse(t *testing.T) {
	c := testingChunk(t)
	require.Equal(t, uint32(42), c.Length())
	require.Equal(t, "RuSt", c.Type().String())
	require.Equal(t, testCRC, c.CRC())

	s, err := c.DataString()
	require.NoError(t, err)
	require.Equal(t, testMessage, s)
}

func TestChunk_ParseConsumesOneChunk(t *testing.T) {
	first := rawChunk(42, "RuSt", []byte(testMessage), testCRC)
	buf := append(append([]byte{}, first...), New(ChunkIEND, nil).Bytes()...)

	c, n, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, len(first), n)
	require.Equal(t, "RuSt", c.Type().String())

	_, err = FromBytes(buf)
	require.Error(t, err)
}

func TestChunk_ParseBadCRC(t *testing.T) {
	_, err := FromBytes(rawChunk(42, "RuSt", []byte(testMessage), testCRC-1))
	require.ErrorIs(t, err, ErrCRCMismatch)
}

func TestChunk_ParseCorruptedByte(t *testing.T) {
	good := New(MustFromString("RuSt"), []byte(testMessage)).Bytes()

	// Flip one bit in every byte covered by the CRC: the type and the data.
	for i := 4; i < len(good)-4; i++ {
		corrupted := append([]byte{}, good...)
		corrupted[i] ^= 0x01
		_, err := FromBytes(corrupted)
		require.ErrorIs(t, err, ErrCRCMismatch, "byte %d", i)
	}
}

func TestChunk_ParseTruncated(t *testing.T) {
	full := rawChunk(42, "RuSt", []byte(testMessage), testCRC)

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"header only", full[:8]},
		{"missing crc", full[:len(full)-1]},
		{"missing data", full[:20]},
		{"huge length", rawChunk(0xffffffff, "RuSt", []byte("x"), 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, _, err := Parse(tc.buf)
				require.ErrorIs(t, err, ErrTruncated)
			})
		})
	}
}

func TestChunk_RoundTrip(t *testing.T) {
	raw := rawChunk(42, "RuSt", []byte(testMessage), testCRC)
	c, err := FromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, c.Bytes())
	require.Len(t, c.Bytes(), Overhead+42)
}

func TestChunk_PermissiveType(t *testing.T) {
	ct := ChunkTypeFromBytes([4]byte{'R', 'u', 's', 't'})
	c := New(ct, []byte("x"))

	parsed, err := FromBytes(c.Bytes())
	require.NoError(t, err)
	require.False(t, parsed.Type().IsValid())
	require.Equal(t, c.CRC(), parsed.CRC())
}

func TestChunk_DataStringNotUTF8(t *testing.T) {
	c := New(MustFromString("RuSt"), []byte{0xff, 0xfe, 0xfd})
	_, err := c.DataString()
	require.ErrorIs(t, err, ErrNotUTF8)
}

func TestChunk_String(t *testing.T) {
	s := testingChunk(t).String()
	require.Contains(t, s, "RuSt")
	require.Contains(t, s, "2882656334")
}

func TestParseIHDR(t *testing.T) {
	data := []byte{0, 0, 1, 0, 0, 0, 0, 200, 8, 6, 0, 0, 0}
	h, err := ParseIHDR(New(ChunkIHDR, data))
	require.NoError(t, err)
	require.Equal(t, uint32(256), h.Width)
	require.Equal(t, uint32(200), h.Height)
	require.Equal(t, uint8(8), h.BitDepth)
	require.Equal(t, "Truecolor with alpha", h.ColorTypeName())

	_, err = ParseIHDR(New(ChunkIHDR, data[:5]))
	require.Error(t, err)

	_, err = ParseIHDR(New(ChunkIDAT, data))
	require.Error(t, err)
}
