package compression

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
	cerrors "github.com/iamNilotpal/zcodec/pkg/errors"
)

func newTestCodec(t *testing.T, opts *domain.CodecOptions) *ZstdCodec {
	t.Helper()

	codec, err := NewZstdCodec(opts)
	require.NoError(t, err)
	t.Cleanup(func() { codec.Close() })

	return codec
}

func randomPayload(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, n)
	rng.Read(buf)
	return buf
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	codec := newTestCodec(t, nil)

	payloads := []struct {
		name    string
		payload []byte
	}{
		{name: "empty", payload: []byte{}},
		{name: "tiny", payload: []byte("hello, world")},
		{name: "repetitive", payload: bytes.Repeat([]byte("abcd"), 4096)},
		{name: "incompressible", payload: randomPayload(256*KiB, 1)},
	}

	for _, tt := range payloads {
		for level := FastestLevel; level <= BestLevel; level++ {
			t.Run(fmt.Sprintf("%s_level_%d", tt.name, level), func(t *testing.T) {
				frame, err := codec.Compress(tt.payload, level)
				require.NoError(t, err)

				restored, err := codec.Decompress(frame)
				require.NoError(t, err)
				assert.Equal(t, tt.payload, restored)
			})
		}
	}
}

func TestCompressKnownExample(t *testing.T) {
	codec := newTestCodec(t, nil)
	payload := bytes.Repeat([]byte("a"), 1000)

	frame, err := codec.Compress(payload, 3)
	require.NoError(t, err)

	hint := codec.SizeHint(frame)
	require.True(t, hint.Known())
	assert.Equal(t, uint64(1000), hint.Size)

	restored, err := codec.Decompress(frame)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestCompressDeclaresSizeForSmallPayloads(t *testing.T) {
	codec := newTestCodec(t, nil)

	// Frame headers may legally omit the content size for small payloads;
	// one-shot frames must declare it anyway so they stay self-describing.
	for _, n := range []int{1, 12, 100, 255, 256, 1023, 4096} {
		t.Run(fmt.Sprintf("%d_bytes", n), func(t *testing.T) {
			payload := randomPayload(n, int64(n))

			frame, err := codec.Compress(payload, DefaultLevel)
			require.NoError(t, err)

			hint := codec.SizeHint(frame)
			require.True(t, hint.Known(), "frame for %d bytes declares no content size", n)
			assert.Equal(t, uint64(n), hint.Size)

			restored, err := codec.Decompress(frame)
			require.NoError(t, err)
			assert.Equal(t, payload, restored)
		})
	}
}

func TestCompressedSizeWithinBound(t *testing.T) {
	codec := newTestCodec(t, nil)

	for _, n := range []int{0, 1, 100, 4096, 100 * KiB, maxBlockSize, 1 * MiB} {
		for level := FastestLevel; level <= BestLevel; level++ {
			payload := randomPayload(n, int64(n))

			frame, err := codec.Compress(payload, level)
			require.NoError(t, err)
			assert.LessOrEqual(
				t, len(frame), CompressBound(n),
				"bound underestimated for n=%d level=%d", n, level,
			)
		}
	}
}

func TestCompressDoesNotMutatePayload(t *testing.T) {
	codec := newTestCodec(t, nil)

	payload := randomPayload(64*KiB, 7)
	original := bytes.Clone(payload)

	_, err := codec.Compress(payload, DefaultLevel)
	require.NoError(t, err)
	assert.Equal(t, original, payload)
}

func TestCompressInvalidLevel(t *testing.T) {
	codec := newTestCodec(t, nil)

	for _, level := range []uint8{0, 5, 200} {
		_, err := codec.Compress([]byte("payload"), level)
		require.Error(t, err)
		assert.True(t, cerrors.IsCodecError(err))
		assert.False(t, cerrors.IsRetryable(err))
	}
}

func TestDecompressInvalidFrame(t *testing.T) {
	codec := newTestCodec(t, nil)

	_, err := codec.Decompress([]byte("this is definitely not a frame"))
	require.Error(t, err)
	assert.True(t, cerrors.IsCodecError(err))
	assert.True(t, errors.Is(err, cerrors.ErrInvalidFrame))
}

func TestDecompressUnknownSizeRejected(t *testing.T) {
	codec := newTestCodec(t, nil)

	// Streamed frames above one block never declare a content size.
	frame := streamCompress(t, codec, randomPayload(512*KiB, 11), DefaultLevel)
	require.Equal(t, domain.SizeUnknown, codec.SizeHint(frame).Kind)

	_, err := codec.Decompress(frame)
	require.Error(t, err)
	assert.True(t, cerrors.IsSizingError(err))
	assert.True(t, errors.Is(err, cerrors.ErrUnknownSize))
}

func TestDecompressTruncatedFrame(t *testing.T) {
	codec := newTestCodec(t, nil)

	frame, err := codec.Compress(randomPayload(200*KiB, 13), DefaultLevel)
	require.NoError(t, err)

	for _, drop := range []int{1, 4, len(frame) / 2, len(frame) - 1} {
		t.Run(fmt.Sprintf("drop_%d_bytes", drop), func(t *testing.T) {
			restored, err := codec.Decompress(frame[:len(frame)-drop])
			require.Error(t, err, "truncated frame must never decompress silently")
			assert.Nil(t, restored)
			assert.True(t, cerrors.IsCodecError(err) || cerrors.IsSizingError(err))
		})
	}
}

func TestDecompressDeclaredSizeAboveCap(t *testing.T) {
	unbounded := newTestCodec(t, nil)
	frame, err := unbounded.Compress(randomPayload(512*KiB, 17), DefaultLevel)
	require.NoError(t, err)

	capped := newTestCodec(t, &domain.CodecOptions{MaxDecodedSize: maxBlockSize})
	_, err = capped.Decompress(frame)
	require.Error(t, err)
	assert.True(t, cerrors.IsSizingError(err))
}

func TestNewZstdCodecInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts *domain.CodecOptions
	}{
		{name: "level_too_high", opts: &domain.CodecOptions{Level: 9}},
		{name: "max_decoded_size_too_small", opts: &domain.CodecOptions{MaxDecodedSize: 1024}},
		{name: "chunk_size_too_small", opts: &domain.CodecOptions{ChunkSize: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewZstdCodec(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestConcurrentCompressIndependence(t *testing.T) {
	codec := newTestCodec(t, nil)

	const workers = 16
	var wg sync.WaitGroup
	results := make([][]byte, workers)
	payloads := make([][]byte, workers)

	for i := 0; i < workers; i++ {
		payloads[i] = randomPayload(64*KiB, int64(100+i))
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()

			frame, err := codec.Compress(payloads[i], DefaultLevel)
			if err != nil {
				return
			}
			restored, err := codec.Decompress(frame)
			if err != nil {
				return
			}
			results[i] = restored
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.Equal(t, payloads[i], results[i], "worker %d result cross-contaminated", i)
	}
}
