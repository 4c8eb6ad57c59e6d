package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxSize int64) *LocalStore {
	s := NewLocalStore(t.TempDir(), maxSize)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestSaveAndRemove(t *testing.T) {
	s := newTestStore(t, 1024)

	f, err := s.Save("Foto Depan.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Foto Depan.JPG", f.Name)
	assert.Equal(t, int64(len("jpeg-bytes")), f.Size)
	assert.Equal(t, filepath.Join(s.Root, "2024-05-01"), filepath.Dir(filepath.FromSlash(f.Path)))
	assert.Equal(t, ".jpg", filepath.Ext(f.Path))

	data, err := os.ReadFile(filepath.FromSlash(f.Path))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Remove(f.Path))
	_, err = os.Stat(filepath.FromSlash(f.Path))
	assert.True(t, os.IsNotExist(err))

	// sudah terhapus
	assert.NoError(t, s.Remove(f.Path))
}

func TestSaveRejects(t *testing.T) {
	s := newTestStore(t, 4)

	_, err := s.Save("doc.pdf", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Save("big.png", "image/png", strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, _ := os.ReadDir(filepath.Join(s.Root, "2024-05-01"))
	assert.Empty(t, entries)
}

func TestRemoveOutsideRoot(t *testing.T) {
	s := newTestStore(t, 4)
	assert.ErrorIs(t, s.Remove(filepath.Join(s.Root, "..", "etc", "passwd")), ErrOutsideRoot)
}

func TestAllowedType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif", "image/webp", "IMAGE/PNG; charset=binary"} {
		assert.True(t, AllowedType(ct), ct)
	}
	for _, ct := range []string{"", "image/svg+xml", "text/plain"} {
		assert.False(t, AllowedType(ct), ct)
	}
}
