package ports

import (
	"io"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
)

// CompressionPort defines the interface for compression operations.
// This allows us to swap compression algorithms without changing core logic.
type CompressionPort interface {
	// Compress compresses an entire in-memory payload in a single call at
	// the given level. The caller's payload is never retained or mutated.
	Compress(payload []byte, level uint8) ([]byte, error)

	// Decompress restores the original payload from a complete frame.
	// It requires the frame to declare its content size; unknown-size
	// frames must go through the streaming path instead.
	Decompress(frame []byte) ([]byte, error)

	// SizeHint inspects a frame's leading metadata and reports the
	// original uncompressed size, if declared. Side-effect free.
	SizeHint(prefix []byte) domain.SizeHint

	// CompressBound returns a worst-case upper bound on compressed output
	// size for an input of n bytes, valid for every compression level.
	CompressBound(n int) int

	// ContentEncoding returns the transport marker for the algorithm.
	ContentEncoding() string

	// Close cleans up compression resources.
	Close() error
}

// StreamPort opens incremental operations bounded by fixed working-buffer
// memory regardless of total payload size. Each returned stream owns its
// own codec context and must be closed on every exit path.
type StreamPort interface {
	// NewStreamCompressor opens a compression stream writing frames to sink.
	NewStreamCompressor(sink io.Writer, level uint8) (StreamCompressor, error)

	// NewStreamDecompressor opens a decompression stream reading frames
	// from source.
	NewStreamDecompressor(source io.Reader) (StreamDecompressor, error)
}

// StreamCompressor consumes payload chunks through Write and emits
// compressed output to its sink as it goes. Close finalizes the frame,
// flushes all remaining output and releases the codec context.
type StreamCompressor interface {
	io.WriteCloser

	// Abort abandons the stream without finalizing the frame: nothing
	// further reaches the sink and the codec context is released. Used when
	// the source fails mid-transfer, so the sink is never left holding a
	// complete-looking frame with silently shortened content.
	Abort()

	// State returns the current lifecycle state of the stream.
	State() domain.StreamState
}

// StreamDecompressor produces decompressed payload chunks through Read.
// Read returns io.EOF once the final frame completes; a source that ends
// mid-frame surfaces a truncated-frame error instead. Close releases the
// codec context and is required even after an error or early abandon.
type StreamDecompressor interface {
	io.ReadCloser

	// State returns the current lifecycle state of the stream.
	State() domain.StreamState
}
