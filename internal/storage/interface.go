package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid storage key")
)

// Object describes one stored blob.
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Storage holds uploaded file bytes. Metadata lives in the database; the
// storage key is the only link between the two.
type Storage interface {
	// Save writes reader to key, refusing to write more than limit bytes.
	// It returns the number of bytes written.
	Save(ctx context.Context, key string, reader io.Reader, limit int64) (int64, error)

	// Open returns a reader for key, or ErrObjectNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored object.
	List(ctx context.Context) ([]Object, error)
}
