package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.bin")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "absent.bin"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 1234), 0o644))

	size, err := FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), size)

	_, err = FileSize(filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.bin")

	created, err := CreateFile(path)
	require.NoError(t, err)
	_, err = created.Write([]byte("contents"))
	require.NoError(t, err)
	require.NoError(t, created.Close())

	opened, err := OpenFile(path)
	require.NoError(t, err)
	defer opened.Close()

	buf := make([]byte, 8)
	n, err := opened.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("contents"), buf[:n])
}
