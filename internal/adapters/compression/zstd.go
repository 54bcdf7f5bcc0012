// Package compression provides one-shot and streaming data compression
// using the zstd algorithm. One-shot operations pre-size their output from
// the frame sizer and the content-size oracle; streaming operations run in
// bounded memory with an explicit per-operation lifecycle.
package compression

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
	cerrors "github.com/iamNilotpal/zcodec/pkg/errors"
)

// ZstdCodec implements CompressionPort using the zstd compression
// algorithm. The shared encoder and decoder instances are safe for
// concurrent one-shot use; every call acquires a fresh internal coder
// state, so independent operations never share mutable state. Encoders
// are cached per level because the level is fixed at construction time.
type ZstdCodec struct {
	opts     *domain.CodecOptions
	mu       sync.RWMutex            // Protects the encoder cache.
	encoders map[uint8]*zstd.Encoder // One encoder per compression level, built on demand.
	decoder  *zstd.Decoder           // Shared decoder for one-shot decompression.
}

// NewZstdCodec creates a new zstd codec with the given options.
// Unset options fall back to defaults; the default-level encoder is built
// eagerly so the common path never pays construction cost.
//
// Returns an error if:
// - Any option is outside its allowed range
// - The encoder or decoder initialization fails
func NewZstdCodec(opts *domain.CodecOptions) (*ZstdCodec, error) {
	if opts == nil {
		opts = DefaultOptions()
	} else {
		opts = prepareDefaults(opts)
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)),
		zstd.WithDecoderMaxMemory(opts.MaxDecodedSize),
	)
	if err != nil {
		return nil, cerrors.NewCodecError("create codec", fmt.Errorf("failed to create decoder: %w", err))
	}

	codec := ZstdCodec{
		opts:     opts,
		decoder:  decoder,
		encoders: make(map[uint8]*zstd.Encoder),
	}

	if _, err := codec.encoderFor(opts.Level); err != nil {
		decoder.Close()
		return nil, err
	}

	return &codec, nil
}

// Compress compresses the entire payload in a single call at the given
// level. The output buffer is pre-sized to CompressBound(len(payload)) and
// trimmed to the produced size. The caller keeps ownership of payload; a
// failed attempt never mutates it.
func (z *ZstdCodec) Compress(payload []byte, level uint8) ([]byte, error) {
	encoder, err := z.encoderFor(level)
	if err != nil {
		return nil, err
	}

	frame := encoder.EncodeAll(payload, make([]byte, 0, CompressBound(len(payload))))
	return frame, nil
}

// Decompress restores the original payload from a complete frame.
// The content-size oracle is consulted first: unknown-size frames are
// rejected with a sizing error (chunked decompression is mandatory for
// them), invalid headers with a codec error. The output buffer is
// allocated to exactly the declared size and the produced size verified
// against it.
func (z *ZstdCodec) Decompress(frame []byte) ([]byte, error) {
	hint := SizeHint(frame)
	switch hint.Kind {
	case domain.SizeInvalid:
		return nil, cerrors.NewCodecError("decompress", cerrors.ErrInvalidFrame)
	case domain.SizeUnknown:
		return nil, cerrors.NewSizingError("decompress", cerrors.ErrUnknownSize)
	}

	if hint.Size > z.opts.MaxDecodedSize {
		return nil, cerrors.NewSizingError(
			"decompress",
			fmt.Errorf("declared content size %d exceeds limit %d", hint.Size, z.opts.MaxDecodedSize),
		)
	}

	payload, err := z.decoder.DecodeAll(frame, make([]byte, 0, hint.Size))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, cerrors.NewCodecError("decompress", cerrors.ErrTruncatedFrame)
		}
		return nil, cerrors.NewCodecError("decompress", fmt.Errorf("decompression failed: %w", err))
	}

	if uint64(len(payload)) != hint.Size {
		return nil, cerrors.NewCodecError(
			"decompress",
			fmt.Errorf("decompressed size %d does not match declared content size %d", len(payload), hint.Size),
		)
	}

	return payload, nil
}

// SizeHint implements the content-size oracle for the port.
func (z *ZstdCodec) SizeHint(prefix []byte) domain.SizeHint {
	return SizeHint(prefix)
}

// CompressBound implements the frame sizer for the port.
func (z *ZstdCodec) CompressBound(n int) int {
	return CompressBound(n)
}

// ContentEncoding returns the transport marker callers attach to outgoing
// metadata after a successful compression.
func (z *ZstdCodec) ContentEncoding() string {
	return domain.ContentEncoding
}

// Level returns the default compression level.
func (z *ZstdCodec) Level() uint8 {
	return z.opts.Level
}

// Close releases all resources used by the codec instance. After closing,
// the instance cannot be used for compression or decompression. Streams
// opened earlier own their contexts and are unaffected.
func (z *ZstdCodec) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	for level, encoder := range z.encoders {
		if err := encoder.Close(); err != nil {
			return cerrors.NewCodecError("close", fmt.Errorf("error closing level %d encoder: %w", level, err))
		}
		delete(z.encoders, level)
	}

	z.decoder.Close()
	return nil
}

// encoderFor returns the cached encoder for level, building it on first
// use. Levels are fixed at encoder construction in the underlying library,
// so per-operation levels map to one shared encoder per level.
func (z *ZstdCodec) encoderFor(level uint8) (*zstd.Encoder, error) {
	if level < FastestLevel || level > BestLevel {
		return nil, cerrors.NewCodecError(
			"compress",
			fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, level),
		)
	}

	z.mu.RLock()
	encoder, ok := z.encoders[level]
	z.mu.RUnlock()
	if ok {
		return encoder, nil
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	if encoder, ok := z.encoders[level]; ok {
		return encoder, nil
	}

	encoder, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderLevel(zstd.EncoderLevel(level)),
		zstd.WithEncoderConcurrency(int(z.opts.EncoderConcurrency)),
		// A zero-length payload still yields a valid, decodable frame.
		zstd.WithZeroFrames(true),
		// Single-segment frames always store the content size. Without this,
		// payloads under 256 bytes produce frames whose header omits it and
		// Decompress would refuse its own Compress output.
		zstd.WithSingleSegment(true),
	)
	if err != nil {
		return nil, cerrors.NewCodecError("compress", fmt.Errorf("failed to create encoder: %w", err))
	}

	z.encoders[level] = encoder
	return encoder, nil
}
