package domain

// ContentEncoding is the transport marker identifying the algorithm.
// On successful compression the caller is responsible for attaching it
// to the outgoing metadata; the codec never sets transport headers itself.
const ContentEncoding = "zstd"

// CodecOptions configures the compression and decompression behavior.
// Options affect both memory usage and throughput.
type CodecOptions struct {
	// Level defines the default compression level used when an operation
	// does not supply one explicitly.
	// Supported levels:
	//   - 1: Fastest compression, minimal CPU usage
	//   - 2: Default balanced compression (≈ zstd level 3)
	//   - 3: Better compression ratio with 2x-3x CPU usage
	//   - 4: Maximum compression regardless of CPU cost
	// If not specified, the default balanced level will be used.
	Level uint8

	// EncoderConcurrency specifies the number of concurrent one-shot
	// compression operations the shared encoder may service. Higher values
	// may improve throughput but increase memory usage.
	// Default is number of CPU cores if set to 0.
	EncoderConcurrency uint8

	// DecoderConcurrency specifies the number of concurrent one-shot
	// decompression operations the shared decoder may service.
	// Default is number of CPU cores if set to 0.
	DecoderConcurrency uint8

	// MaxDecodedSize caps the allocation a one-shot decompression will make
	// based on a frame's declared content size. Frame headers are untrusted
	// input; a size above the cap is rejected before any allocation.
	// Default is 1GiB if set to 0.
	MaxDecodedSize uint64

	// ChunkSize overrides the working-buffer size used by streaming
	// operations. Default is the codec's recommended chunk size if set to 0.
	ChunkSize uint32
}
