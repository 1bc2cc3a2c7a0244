package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned when the requested key has no stored value.
	ErrKeyNotFound = errors.New("storage key not found")
	// ErrInvalidKey is returned for empty keys or keys that would escape
	// the storage namespace.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrStorageFailed wraps backend I/O failures.
	ErrStorageFailed = errors.New("storage operation failed")
)

// Storage is the durable key-value port for session persistence.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Load returns the value stored under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes the value stored under key. Deleting a missing key
	// is a no-op.
	Delete(ctx context.Context, key string) error
}
