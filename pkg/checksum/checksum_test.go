package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	sum := Checksum(data)
	assert.Equal(t, sum, Checksum(data))
	assert.NotEqual(t, sum, Checksum(data[:len(data)-1]))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("payload")
	sum := Checksum(data)

	assert.True(t, VerifyChecksum(data, sum))
	assert.False(t, VerifyChecksum([]byte("payloae"), sum))
}

func TestStreamingMatchesOneShot(t *testing.T) {
	data := []byte("split across several writes")

	h := New()
	for _, part := range [][]byte{data[:5], data[5:12], data[12:]} {
		_, err := h.Write(part)
		require.NoError(t, err)
	}

	assert.Equal(t, Checksum(data), h.Sum64())
}
