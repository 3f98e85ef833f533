// Package blob abstracts photo object storage behind a small interface so the
// server can run against S3 in production and the local filesystem in
// development.
package blob

import (
	"context"
	"io"
)

// Store writes and resolves photo objects by key.
type Store interface {
	// Put stores the object under key. Existing objects are overwritten.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// URL resolves a key to something a browser can fetch.
	URL(ctx context.Context, key string) (string, error)
}
