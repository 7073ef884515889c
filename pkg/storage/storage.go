// Package storage provides the ambient key-value store shared by the capture
// agent and the composer.
//
// The store is deliberately minimal: a flat namespace of keys mapping to
// opaque byte slices. Callers serialise their own values (see the selection
// package for the only key in use, "selectedItems").
//
// Backends:
//   - [MemoryStore]: in-process map, used by tests and ephemeral servers
//   - [FileStore]: one JSON file per key, the CLI default
//   - [RedisStore]: shared store for multi-process deployments
//   - [MongoStore]: document store, one document per key
//
// No backend offers transactions. Two writers performing read-modify-write on
// the same key race, and the last write wins.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store closed")

// Store is the interface every backend implements.
type Store interface {
	// Get returns the value stored under key. The boolean is false when the
	// key does not exist; that is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)
