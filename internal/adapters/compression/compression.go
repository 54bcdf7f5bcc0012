package compression

import (
	"fmt"
	"runtime"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
)

// Compression level constants define the trade-off between compression ratio and speed.
// Higher levels provide better compression at the cost of increased CPU usage and time.
const (
	FastestLevel uint8 = 1 // Optimized for speed with minimal compression
	DefaultLevel uint8 = 2 // Balanced between speed and ratio (≈ zstd level 3)
	BetterLevel  uint8 = 3 // Better ratio, 2x-3x CPU usage
	BestLevel    uint8 = 4 // Maximum compression ratio, highest CPU usage
)

const (
	DefaultMaxDecodedSize uint64 = 1024 * MiB // 1GiB

	DefaultMinChunkSize = 4 * KiB
	DefaultMaxChunkSize = 16 * MiB
)

// DefaultOptions returns a CodecOptions struct initialized with
// recommended default values that provide a good balance between
// compression ratio and performance for most use cases.
func DefaultOptions() *domain.CodecOptions {
	return &domain.CodecOptions{
		Level:              DefaultLevel,
		EncoderConcurrency: uint8(runtime.NumCPU()),
		DecoderConcurrency: uint8(runtime.NumCPU()),
		MaxDecodedSize:     DefaultMaxDecodedSize,
		ChunkSize:          uint32(StreamChunkSize(CompressInput)),
	}
}

func prepareDefaults(opts *domain.CodecOptions) *domain.CodecOptions {
	if opts.Level == 0 {
		opts.Level = DefaultLevel
	}

	if opts.EncoderConcurrency == 0 {
		opts.EncoderConcurrency = uint8(runtime.NumCPU())
	}

	if opts.DecoderConcurrency == 0 {
		opts.DecoderConcurrency = uint8(runtime.NumCPU())
	}

	if opts.MaxDecodedSize == 0 {
		opts.MaxDecodedSize = DefaultMaxDecodedSize
	}

	if opts.ChunkSize == 0 {
		opts.ChunkSize = uint32(StreamChunkSize(CompressInput))
	}

	return opts
}

// Validate checks if the codec options are valid and returns an error if
// any option is outside acceptable bounds.
func Validate(opts *domain.CodecOptions) error {
	if opts.Level < FastestLevel || opts.Level > BestLevel {
		return fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, opts.Level)
	}

	if opts.EncoderConcurrency > uint8(runtime.NumCPU()) {
		return fmt.Errorf(
			"encoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), opts.EncoderConcurrency,
		)
	}

	if opts.DecoderConcurrency > uint8(runtime.NumCPU()) {
		return fmt.Errorf(
			"decoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), opts.DecoderConcurrency,
		)
	}

	if opts.MaxDecodedSize < maxBlockSize {
		return fmt.Errorf("max decoded size must be at least %d bytes, got %d", maxBlockSize, opts.MaxDecodedSize)
	}

	if opts.ChunkSize < DefaultMinChunkSize || opts.ChunkSize > DefaultMaxChunkSize {
		return fmt.Errorf(
			"chunk size must be between %d and %d bytes, got %d", DefaultMinChunkSize, DefaultMaxChunkSize, opts.ChunkSize,
		)
	}

	return nil
}
