package compression

import (
	"github.com/klauspost/compress/zstd"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
)

// HeaderPrefixSize is the number of leading frame bytes SizeHint needs to
// classify any frame. Shorter prefixes are classified as invalid when the
// header cannot be fully parsed.
const HeaderPrefixSize = zstd.HeaderMaxSize

// SizeHint inspects a frame's leading metadata and recovers the original
// uncompressed size without decompressing anything. It never mutates or
// consumes codec state and only needs a header-sized prefix, not the full
// frame.
//
// Returns:
//   - KnownSize(n) when the header declares n content bytes.
//   - UnknownSize for well-formed frames without a declared size,
//     including skippable frames. Such frames require the streaming path.
//   - InvalidFrame when the bytes do not parse as a frame header.
func SizeHint(prefix []byte) domain.SizeHint {
	var header zstd.Header
	if err := header.Decode(prefix); err != nil {
		return domain.InvalidFrame()
	}

	if header.Skippable || !header.HasFCS {
		return domain.UnknownSize()
	}

	return domain.KnownSize(header.FrameContentSize)
}
