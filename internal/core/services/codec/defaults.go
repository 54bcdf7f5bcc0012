package codec

import (
	"github.com/iamNilotpal/zcodec/internal/adapters/compression"
	"github.com/iamNilotpal/zcodec/internal/core/domain"
)

func prepareDefaults(opts *domain.CodecOptions) *domain.CodecOptions {
	defaults := compression.DefaultOptions()

	if opts.Level == 0 {
		opts.Level = defaults.Level
	}

	if opts.EncoderConcurrency == 0 {
		opts.EncoderConcurrency = defaults.EncoderConcurrency
	}

	if opts.DecoderConcurrency == 0 {
		opts.DecoderConcurrency = defaults.DecoderConcurrency
	}

	if opts.MaxDecodedSize == 0 {
		opts.MaxDecodedSize = defaults.MaxDecodedSize
	}

	if opts.ChunkSize == 0 {
		opts.ChunkSize = defaults.ChunkSize
	}

	return opts
}
