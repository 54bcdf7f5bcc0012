package pool

import (
	"sync"
)

// BufferPool manages a pool of fixed-capacity byte chunks. Streaming
// operations lease one chunk per direction, reuse it across all chunks of
// the transfer and return it when the stream is released.
type BufferPool struct {
	size int       // Capacity of each chunk.
	pool sync.Pool // Thread-safe pool of chunks.
}

// NewBufferPool creates a new pool handing out chunks of the given size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Size returns the capacity of the chunks this pool hands out.
func (bp *BufferPool) Size() int {
	return bp.size
}

// Get retrieves a chunk from the pool, always sized to the pool's capacity.
func (bp *BufferPool) Get() []byte {
	buf := bp.pool.Get().(*[]byte)
	return (*buf)[:bp.size]
}

// Put returns a chunk to the pool.
func (bp *BufferPool) Put(buf []byte) {
	// Don't pool chunks that don't match the pool's capacity.
	if cap(buf) != bp.size {
		return
	}

	buf = buf[:bp.size]
	bp.pool.Put(&buf)
}
