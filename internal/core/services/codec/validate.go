package codec

import (
	"github.com/iamNilotpal/zcodec/internal/adapters/compression"
	"github.com/iamNilotpal/zcodec/internal/core/domain"
	cerrors "github.com/iamNilotpal/zcodec/pkg/errors"
)

// Validate checks caller-supplied options before any resources are
// acquired. Zero values are allowed here; they are filled in by
// prepareDefaults afterwards.
func Validate(opts *domain.CodecOptions) error {
	probe := *opts

	if probe.Level == 0 {
		probe.Level = compression.DefaultLevel
	}
	if probe.MaxDecodedSize == 0 {
		probe.MaxDecodedSize = compression.DefaultMaxDecodedSize
	}
	if probe.ChunkSize == 0 {
		probe.ChunkSize = uint32(compression.StreamChunkSize(compression.CompressInput))
	}

	if err := compression.Validate(&probe); err != nil {
		return cerrors.NewValidationError("codec options", opts, err)
	}

	return nil
}
