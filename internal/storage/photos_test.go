//go:build !integration

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewPhotoStore(dir)
	require.NoError(t, err)

	path, err := store.Save(strings.NewReader("png-bytes"), "Phone.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".png"))
	data, err := os.ReadFile(filepath.FromSlash(path))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(filepath.FromSlash(path))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(path), "removing twice is not an error")
}

func TestPhotoStore_SaveUniqueNames(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save(strings.NewReader("a"), "photo.jpg")
	require.NoError(t, err)
	b, err := store.Save(strings.NewReader("b"), "photo.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPhotoStore_RemoveOutsideRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewPhotoStore(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	outside := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	tests := []string{
		outside,
		filepath.Join(store.Dir(), "..", "secret.txt"),
		store.Dir(),
	}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			assert.ErrorIs(t, store.Remove(p), ErrOutsideRoot)
		})
	}

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
