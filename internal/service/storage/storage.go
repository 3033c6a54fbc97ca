// Package storage persists uploaded files on disk and hands back the
// public metadata the chat embeds in file messages.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Upload is the metadata returned to the uploader. The hub embeds it
// verbatim in file-type chat messages.
type Upload struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

// Store writes uploads under a single directory served at /uploads.
type Store struct {
	dir string
}

// NewStore ensures the upload directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save streams the upload to disk under a unique name that keeps the
// original extension, and returns the public metadata.
func (s *Store) Save(originalName string, r io.Reader) (Upload, error) {
	suffix := uuid.NewString()[:8]
	stored := fmt.Sprintf("file-%d-%s%s", time.Now().UnixMilli(), suffix, filepath.Ext(originalName))

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return Upload{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return Upload{}, fmt.Errorf("failed to write file: %w", err)
	}

	return Upload{
		FileURL:  "/uploads/" + stored,
		FileName: originalName,
		FileSize: size,
	}, nil
}
