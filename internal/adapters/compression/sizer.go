package compression

// Frame-format limits the sizer arithmetic is derived from. A zstd frame
// is a header of at most frameHeaderMaxSize bytes, a sequence of blocks of
// at most maxBlockSize content each behind a blockHeaderSize header, and an
// optional trailing checksum.
const (
	KiB = 1024
	MiB = KiB * KiB

	maxBlockSize       = 128 * KiB
	frameHeaderMaxSize = 18
	blockHeaderSize    = 3
	checksumSize       = 4
)

// CompressBound returns a worst-case upper bound on compressed output size
// for an input of n bytes. It never underestimates, for any compression
// level: incompressible input is stored as raw blocks whose per-block
// overhead stays well under the n>>8 margin, and the small-input term
// covers the fixed frame overhead when n>>8 alone would not.
func CompressBound(n int) int {
	margin := n >> 8
	if n < maxBlockSize {
		margin += (maxBlockSize - n) >> 11
	}
	return n + margin
}

// Direction selects which side of which streaming operation a chunk
// buffer feeds.
type Direction int

const (
	CompressInput Direction = iota + 1
	CompressOutput
	DecompressInput
	DecompressOutput
)

func (d Direction) String() string {
	switch d {
	case CompressInput:
		return "compress-input"
	case CompressOutput:
		return "compress-output"
	case DecompressInput:
		return "decompress-input"
	case DecompressOutput:
		return "decompress-output"
	default:
		return "unknown"
	}
}

// StreamChunkSize returns the recommended fixed working-buffer size for
// one side of a streaming operation. Input sides hold exactly one block of
// payload; output sides leave room for the worst-case expansion of a block
// plus its framing.
func StreamChunkSize(d Direction) int {
	switch d {
	case CompressInput, DecompressOutput:
		return maxBlockSize
	case CompressOutput:
		return CompressBound(maxBlockSize) + blockHeaderSize + checksumSize
	case DecompressInput:
		return maxBlockSize + blockHeaderSize
	default:
		return maxBlockSize
	}
}
