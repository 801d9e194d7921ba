// Package storage provides content-addressable blob backends. A blob
// store has no versioning awareness; it takes a stream and returns a
// durable, re-fetchable location string. Content is append-only from
// the caller's perspective.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

type BlobStorage interface {
	// Upload stores the stream and returns its location. suggestedName
	// only influences the stored object's extension.
	Upload(ctx context.Context, r io.Reader, suggestedName string) (string, error)
}

// blobKey builds a fresh object key, keeping the original extension so
// downloads keep a usable filename.
func blobKey(suggestedName string) string {
	return uuid.NewString() + filepath.Ext(suggestedName)
}
