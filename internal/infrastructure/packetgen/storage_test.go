package packetgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Store(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir)

	data := []byte("<html><body>packet</body></html>")
	location, size, err := storage.Store("sub_abcdef123456.html", data)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub_abcdef123456.html"), location)
	assert.Equal(t, int64(len(data)), size)

	written, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestLocalStorage_Store_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "packets")
	storage := NewLocalStorage(dir)

	location, size, err := storage.Store("sub_abcdef123456.html", []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), size)
	assert.FileExists(t, location)
}

func TestLocalStorage_Store_Overwrites(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir)

	_, _, err := storage.Store("sub_abcdef123456.html", []byte("first"))
	require.NoError(t, err)

	location, size, err := storage.Store("sub_abcdef123456.html", []byte("second render"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)

	written, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "second render", string(written))
}
