package checksum

import (
	"hash"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxhash64 digest of data. Used to verify that a
// decompressed payload matches the original it was compressed from.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// VerifyChecksum reports whether data hashes to the expected digest.
func VerifyChecksum(data []byte, checksum uint64) bool {
	return xxhash.Sum64(data) == checksum
}

// New returns a streaming xxhash64 hasher for digesting payloads that are
// too large to hold in memory.
func New() hash.Hash64 {
	return xxhash.New()
}
