package compression

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
	"github.com/iamNilotpal/zcodec/internal/core/ports"
	cerrors "github.com/iamNilotpal/zcodec/pkg/errors"
)

// errorTrackingWriter remembers the first error returned by the sink so a
// failure surfaced through the encoder can be attributed to I/O rather
// than to the codec.
type errorTrackingWriter struct {
	w   io.Writer
	err error
}

func (t *errorTrackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}

// errorTrackingReader remembers the first non-EOF error returned by the
// source. End of input is a normal condition, not an I/O failure.
type errorTrackingReader struct {
	r   io.Reader
	err error
}

func (t *errorTrackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}

// StreamCompressor compresses a payload of unbounded size incrementally.
// Each instance owns one codec context, acquired at creation and released
// exactly once on every exit path: successful Close, failure, or early
// abandon. A failed stream cannot be resumed; restart from a new one.
type StreamCompressor struct {
	enc      *zstd.Encoder
	sink     *errorTrackingWriter
	state    domain.StreamState
	released bool
}

// NewStreamCompressor opens a compression stream writing one frame to
// sink. Compressed output is flushed to the sink as blocks complete, so
// memory stays bounded regardless of total payload size. The stream runs
// without internal parallelism; the calling goroutine drives all work.
func (z *ZstdCodec) NewStreamCompressor(sink io.Writer, level uint8) (ports.StreamCompressor, error) {
	if level < FastestLevel || level > BestLevel {
		return nil, cerrors.NewCodecError(
			"open compress stream",
			fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, level),
		)
	}

	tracked := errorTrackingWriter{w: sink}
	encoder, err := zstd.NewWriter(
		&tracked,
		zstd.WithEncoderLevel(zstd.EncoderLevel(level)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithLowerEncoderMem(true),
		// Finalizing without this on an unwritten stream emits nothing at
		// all; with it, Close always drains a valid frame to the sink, empty
		// payload included.
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, cerrors.NewCodecError("open compress stream", fmt.Errorf("failed to create encoder: %w", err))
	}

	return &StreamCompressor{enc: encoder, sink: &tracked, state: domain.StreamCreated}, nil
}

// Write consumes one chunk of payload, producing and flushing compressed
// output as internal blocks fill. Returns an IOError if the sink failed,
// a CodecError for compressor faults; either way the stream is failed and
// its context released.
func (s *StreamCompressor) Write(p []byte) (int, error) {
	if s.state.Terminal() {
		return 0, cerrors.NewCodecError("stream compress", fmt.Errorf("write on %s stream", s.state))
	}
	s.state = domain.StreamRunning

	n, err := s.enc.Write(p)
	if err != nil {
		return n, s.fail("stream compress", err)
	}
	return n, nil
}

// Close finalizes the frame: the encoder is drained until no internal
// state remains, all produced bytes reach the sink, and the context is
// released. Closing a finished or failed stream is a no-op, so Close is
// safe to defer alongside an explicit call.
func (s *StreamCompressor) Close() error {
	if s.state.Terminal() {
		return nil
	}
	s.state = domain.StreamFinalizing

	if err := s.release(); err != nil {
		s.state = domain.StreamFailed
		if s.sink.err != nil {
			return cerrors.NewIOError("stream compress finalize", s.sink.err)
		}
		return cerrors.NewCodecError("stream compress finalize", fmt.Errorf("compression failed: %w", err))
	}

	s.state = domain.StreamDone
	return nil
}

// Abort abandons the stream without finalizing the frame. Nothing further
// reaches the sink; bytes already flushed stay as-is, leaving an
// incomplete frame that decoders reject as truncated. The context is
// released and the stream marked failed. Aborting a terminal stream is a
// no-op.
func (s *StreamCompressor) Abort() {
	if s.state.Terminal() {
		return
	}
	s.state = domain.StreamFailed
	// Drop the epilogue instead of emitting a frame that would decode as a
	// silently shortened payload.
	s.sink.w = io.Discard
	_ = s.release()
}

// State returns the current lifecycle state of the stream.
func (s *StreamCompressor) State() domain.StreamState {
	return s.state
}

func (s *StreamCompressor) fail(operation string, err error) error {
	s.state = domain.StreamFailed
	// The release error is secondary to the original failure.
	_ = s.release()

	if s.sink.err != nil {
		return cerrors.NewIOError(operation, s.sink.err)
	}
	return cerrors.NewCodecError(operation, fmt.Errorf("compression failed: %w", err))
}

func (s *StreamCompressor) release() error {
	if s.released {
		return nil
	}
	s.released = true
	return s.enc.Close()
}

// StreamDecompressor decompresses frames incrementally from a source.
// There is no separate finalize step: decompression completes naturally at
// end of input, and a source that ends mid-frame surfaces a
// truncated-frame error rather than silently returning a prefix.
type StreamDecompressor struct {
	dec      *zstd.Decoder
	source   *errorTrackingReader
	state    domain.StreamState
	released bool
}

// NewStreamDecompressor opens a decompression stream reading frames from
// source. The declared-size allocation cap applies here too; frames
// claiming more than the configured maximum fail mid-stream.
func (z *ZstdCodec) NewStreamDecompressor(source io.Reader) (ports.StreamDecompressor, error) {
	tracked := errorTrackingReader{r: source}
	decoder, err := zstd.NewReader(
		&tracked,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(z.opts.MaxDecodedSize),
	)
	if err != nil {
		return nil, cerrors.NewCodecError("open decompress stream", fmt.Errorf("failed to create decoder: %w", err))
	}

	return &StreamDecompressor{dec: decoder, source: &tracked, state: domain.StreamCreated}, nil
}

// Read produces up to len(p) decompressed bytes. io.EOF signals that the
// final frame completed and the context has been released. Source read
// failures return an IOError, truncated or corrupt frames a CodecError;
// both fail the stream and release its context.
func (s *StreamDecompressor) Read(p []byte) (int, error) {
	if s.state == domain.StreamDone {
		return 0, io.EOF
	}
	if s.state == domain.StreamFailed {
		return 0, cerrors.NewCodecError("stream decompress", fmt.Errorf("read on %s stream", s.state))
	}
	s.state = domain.StreamRunning

	n, err := s.dec.Read(p)
	if err == nil {
		return n, nil
	}

	if err == io.EOF {
		s.release()
		s.state = domain.StreamDone
		return n, io.EOF
	}

	return n, s.fail("stream decompress", err)
}

// Close releases the codec context. Abandoning an unfinished stream marks
// it failed rather than done; the sink may hold incomplete output.
// Closing a finished or failed stream is a no-op.
func (s *StreamDecompressor) Close() error {
	if s.state.Terminal() {
		return nil
	}
	s.release()
	s.state = domain.StreamFailed
	return nil
}

// State returns the current lifecycle state of the stream.
func (s *StreamDecompressor) State() domain.StreamState {
	return s.state
}

func (s *StreamDecompressor) fail(operation string, err error) error {
	s.state = domain.StreamFailed
	s.release()

	if s.source.err != nil {
		return cerrors.NewIOError(operation, s.source.err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return cerrors.NewCodecError(operation, cerrors.ErrTruncatedFrame)
	}
	return cerrors.NewCodecError(operation, fmt.Errorf("decompression failed: %w", err))
}

func (s *StreamDecompressor) release() {
	if s.released {
		return
	}
	s.released = true
	s.dec.Close()
}
