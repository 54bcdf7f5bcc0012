package compression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressBoundMonotonic(t *testing.T) {
	previous := CompressBound(0)
	for n := 1; n <= 4*maxBlockSize; n += 1024 {
		bound := CompressBound(n)
		assert.GreaterOrEqual(t, bound, previous, "bound shrank at n=%d", n)
		assert.Greater(t, bound, n, "bound must leave room for frame overhead at n=%d", n)
		previous = bound
	}
}

func TestCompressBoundCoversEmptyInput(t *testing.T) {
	// An empty payload still produces a frame header, so the bound cannot
	// be zero.
	assert.Greater(t, CompressBound(0), 0)
}

func TestStreamChunkSizes(t *testing.T) {
	directions := []Direction{CompressInput, CompressOutput, DecompressInput, DecompressOutput}
	for _, d := range directions {
		assert.Greater(t, StreamChunkSize(d), 0, "direction %s", d)
	}

	// Output-side buffers must absorb the worst-case expansion of one
	// input-side chunk.
	assert.GreaterOrEqual(t, StreamChunkSize(CompressOutput), CompressBound(StreamChunkSize(CompressInput)))
	assert.GreaterOrEqual(t, StreamChunkSize(DecompressInput), StreamChunkSize(DecompressOutput))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "compress-input", CompressInput.String())
	assert.Equal(t, "compress-output", CompressOutput.String())
	assert.Equal(t, "decompress-input", DecompressInput.String())
	assert.Equal(t, "decompress-output", DecompressOutput.String())
	assert.Equal(t, "unknown", Direction(0).String())
}
