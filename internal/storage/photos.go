// Package storage keeps uploaded product photos on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrOutsideRoot is returned for paths that do not resolve inside the upload directory.
var ErrOutsideRoot = errors.New("storage: path outside upload directory")

// PhotoStore writes photos under a single directory. Stored paths are relative
// to the working directory, e.g. "uploads/3f0c...png", and are served as static files.
type PhotoStore struct {
	dir string
}

// NewPhotoStore creates the upload directory if needed.
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &PhotoStore{dir: filepath.Clean(dir)}, nil
}

// Dir returns the upload directory.
func (s *PhotoStore) Dir() string {
	return s.dir
}

// Save copies src to a new file named by a random uuid, keeping the extension of
// originalName, and returns the stored path.
func (s *PhotoStore) Save(src io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create photo: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: write photo: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: close photo: %w", err)
	}

	log.Debug().Str("photo", path).Msg("Photo stored")
	return filepath.ToSlash(path), nil
}

// Remove deletes a stored photo. A photo that is already gone is not an error.
func (s *PhotoStore) Remove(path string) error {
	clean := filepath.Clean(filepath.FromSlash(path))
	rel, err := filepath.Rel(s.dir, clean)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ErrOutsideRoot
	}

	if err := os.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove photo: %w", err)
	}
	return nil
}
