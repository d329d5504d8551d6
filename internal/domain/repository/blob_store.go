package repository

import (
	"context"
	"errors"
)

var (
	ErrBlobNotFound    = errors.New("blob not found")
	ErrVersionConflict = errors.New("blob was modified concurrently")
)

// BlobStore persists opaque values under string keys with a monotonically
// increasing version per key. Version 0 means "absent".
type BlobStore interface {
	// Get returns ErrBlobNotFound when key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, int64, error)
	// CompareAndSwap writes value only if the stored version equals expected,
	// returning the new version, or ErrVersionConflict otherwise.
	CompareAndSwap(ctx context.Context, key string, value []byte, expected int64) (int64, error)
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}
