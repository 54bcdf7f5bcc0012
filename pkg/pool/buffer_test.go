package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPoolChunkSize(t *testing.T) {
	bp := NewBufferPool(4096)
	assert.Equal(t, 4096, bp.Size())

	buf := bp.Get()
	require.Len(t, buf, 4096)
	bp.Put(buf)
}

func TestBufferPoolGetAfterShortenedPut(t *testing.T) {
	bp := NewBufferPool(1024)

	buf := bp.Get()
	bp.Put(buf[:10])

	// Chunks come back restored to full pool capacity.
	again := bp.Get()
	assert.Len(t, again, 1024)
}

func TestBufferPoolRejectsForeignChunk(t *testing.T) {
	bp := NewBufferPool(512)

	// Wrong-capacity chunks are dropped, never handed back out.
	bp.Put(make([]byte, 64))
	assert.Len(t, bp.Get(), 512)
}
