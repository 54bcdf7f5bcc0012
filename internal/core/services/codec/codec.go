package codec

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/iamNilotpal/zcodec/internal/adapters/compression"
	"github.com/iamNilotpal/zcodec/internal/core/domain"
	"github.com/iamNilotpal/zcodec/internal/core/ports"
	cerrors "github.com/iamNilotpal/zcodec/pkg/errors"
	"github.com/iamNilotpal/zcodec/pkg/logger"
	"github.com/iamNilotpal/zcodec/pkg/pool"
	"github.com/iamNilotpal/zcodec/pkg/system"
)

// compressionPort is the full adapter surface the service drives: one-shot
// operations plus streaming factories.
type compressionPort interface {
	ports.CompressionPort
	ports.StreamPort
}

// Codec orchestrates compression and decompression on top of a
// compression adapter. One-shot calls serve bounded payloads held fully in
// memory; streaming calls pump between an io.Reader and an io.Writer in
// fixed-size chunks, so memory stays bounded regardless of payload size.
//
// A single Codec is safe for concurrent use: one-shot operations share no
// mutable state, and every streaming transfer owns its own codec context
// and chunk buffer.
type Codec struct {
	options     *domain.CodecOptions
	compression compressionPort
	chunks      *pool.BufferPool // Working buffers leased per streaming transfer.
	log         *zap.SugaredLogger
}

func New(opts *domain.CodecOptions) (*Codec, error) {
	if opts != nil {
		if err := Validate(opts); err != nil {
			return nil, err
		}
		opts = prepareDefaults(opts)
	} else {
		opts = prepareDefaults(&domain.CodecOptions{})
	}

	adapter, err := compression.NewZstdCodec(opts)
	if err != nil {
		return nil, err
	}

	codec := Codec{
		options:     opts,
		compression: adapter,
		chunks:      pool.NewBufferPool(int(opts.ChunkSize)),
		log:         logger.New("zcodec"),
	}

	return &codec, nil
}

// Compress compresses the entire payload at the default level.
func (c *Codec) Compress(ctx context.Context, payload []byte) ([]byte, error) {
	return c.CompressLevel(ctx, payload, c.options.Level)
}

// CompressLevel compresses the entire payload at an explicit level,
// overriding the configured default for this operation only.
func (c *Codec) CompressLevel(ctx context.Context, payload []byte, level uint8) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.compression.Compress(payload, level)
}

// Decompress restores the original payload from a complete frame. Frames
// without a declared content size are rejected with a sizing error; use
// DecompressStream for those.
func (c *Codec) Decompress(ctx context.Context, frame []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.compression.Decompress(frame)
}

// SizeHint reports the original uncompressed size declared by a frame's
// leading metadata, without decompressing anything.
func (c *Codec) SizeHint(prefix []byte) domain.SizeHint {
	return c.compression.SizeHint(prefix)
}

// CompressBound returns a worst-case upper bound on compressed output size
// for an input of n bytes.
func (c *Codec) CompressBound(n int) int {
	return c.compression.CompressBound(n)
}

// ContentEncoding returns the marker callers attach to transport metadata
// after a successful compression.
func (c *Codec) ContentEncoding() string {
	return c.compression.ContentEncoding()
}

// CompressStream compresses everything read from source into one frame
// written to sink, at the default level.
func (c *Codec) CompressStream(ctx context.Context, source io.Reader, sink io.Writer) error {
	return c.CompressStreamLevel(ctx, source, sink, c.options.Level)
}

// CompressStreamLevel compresses everything read from source into one
// frame written to sink. Source is read one chunk at a time into a fixed
// working buffer; produced output is flushed to the sink before the buffer
// is reused. On any failure the frame is never finalized, so the sink is
// left with recognizably incomplete data rather than a silently shortened
// payload.
func (c *Codec) CompressStreamLevel(ctx context.Context, source io.Reader, sink io.Writer, level uint8) error {
	stream, err := c.compression.NewStreamCompressor(sink, level)
	if err != nil {
		return err
	}

	finalized := false
	defer func() {
		if !finalized {
			stream.Abort()
		}
	}()

	buf := c.chunks.Get()
	defer c.chunks.Put(buf)

	var consumed int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := source.Read(buf)
		if n > 0 {
			consumed += int64(n)
			if _, err := stream.Write(buf[:n]); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return cerrors.NewIOError("compress stream: read source", readErr)
		}
	}

	finalized = true
	if err := stream.Close(); err != nil {
		return err
	}

	c.log.Debugw("compress stream complete", "bytes", consumed, "level", level)
	return nil
}

// DecompressStream decompresses everything read from source, writing the
// recovered payload to sink. Output is produced one chunk at a time into a
// fixed working buffer and flushed to the sink before the buffer is
// reused. A source that ends mid-frame fails with a truncated-frame error.
func (c *Codec) DecompressStream(ctx context.Context, source io.Reader, sink io.Writer) error {
	stream, err := c.compression.NewStreamDecompressor(source)
	if err != nil {
		return err
	}
	defer stream.Close()

	buf := c.chunks.Get()
	defer c.chunks.Put(buf)

	var produced int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := stream.Read(buf)
		if n > 0 {
			if _, err := sink.Write(buf[:n]); err != nil {
				return cerrors.NewIOError("decompress stream: write sink", err)
			}
			produced += int64(n)
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	c.log.Debugw("decompress stream complete", "bytes", produced)
	return nil
}

// Close releases the codec's shared resources. In-flight streams own their
// contexts and are unaffected; new operations must not be started after
// Close.
func (c *Codec) Close(ctx context.Context) error {
	return system.RunWithContext(ctx, func(context.Context) error {
		return c.compression.Close()
	})
}
