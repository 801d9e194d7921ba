package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps blobs as plain files under a base directory.
type LocalStorage struct {
	baseDir string
}

var _ BlobStorage = (*LocalStorage)(nil)

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %v", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	key := blobKey(suggestedName)
	path := filepath.Join(s.baseDir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob file: %v", err)
	}
	return path, nil
}

// Open returns the blob's content for download. Locations outside the
// base directory are rejected.
func (s *LocalStorage) Open(location string) (io.ReadCloser, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("invalid blob location: %v", err)
	}
	baseDir, err := filepath.Abs(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("invalid blob directory: %v", err)
	}
	if !strings.HasPrefix(absPath, baseDir+string(os.PathSeparator)) {
		return nil, fmt.Errorf("blob location outside storage directory")
	}
	return os.Open(absPath)
}
