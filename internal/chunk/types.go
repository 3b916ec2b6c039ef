package chunk

// Chunk types defined by the PNG specification.
var (
	// Critical chunks
	ChunkIHDR = MustFromString("IHDR")
	ChunkPLTE = MustFromString("PLTE")
	ChunkIDAT = MustFromString("IDAT")
	ChunkIEND = MustFromString("IEND")

	// Ancillary chunks
	ChunkcHRM = MustFromString("cHRM")
	ChunkgAMA = MustFromString("gAMA")
	ChunkiCCP = MustFromString("iCCP")
	ChunksBIT = MustFromString("sBIT")
	ChunksRGB = MustFromString("sRGB")
	ChunkbKGD = MustFromString("bKGD")
	ChunkhIST = MustFromString("hIST")
	ChunktRNS = MustFromString("tRNS")
	ChunkpHYs = MustFromString("pHYs")
	ChunksPLT = MustFromString("sPLT")
	ChunktIME = MustFromString("tIME")
	ChunkiTXt = MustFromString("iTXt")
	ChunktEXt = MustFromString("tEXt")
	ChunkzTXt = MustFromString("zTXt")
)

var standardTypes = []ChunkType{
	ChunkIHDR, ChunkPLTE, ChunkIDAT, ChunkIEND,
	ChunkcHRM, ChunkgAMA, ChunkiCCP, ChunksBIT, ChunksRGB, ChunkbKGD,
	ChunkhIST, ChunktRNS, ChunkpHYs, ChunksPLT, ChunktIME, ChunkiTXt,
	ChunktEXt, ChunkzTXt,
}

// IsStandard reports whether ct is one of the chunk types defined by the PNG
// specification.
func IsStandard(ct ChunkType) bool {
	for _, s := range standardTypes {
		if s == ct {
			return true
		}
	}
	return false
}
