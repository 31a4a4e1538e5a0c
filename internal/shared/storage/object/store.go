// Package object stores generated documents outside the database.
package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Info describes a stored object.
type Info struct {
	Key       string
	SizeBytes int64
	SHA256    string
}

// Store saves and retrieves binary objects namespaced per user.
type Store interface {
	Save(ctx context.Context, userID, fileName, contentType string, r io.Reader) (Info, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
