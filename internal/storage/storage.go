// Package storage defines the durable store contract for documents and its
// concrete backends (MinIO object store, MongoDB collection, in-memory map).
// Exactly one backend is active per process, selected by configuration.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no record exists under the id.
	// It is the only backend error callers are expected to branch on.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedBackend is returned by every operation of a backend
	// constructed from an unknown STORAGE_BACKEND selection.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")

	// ErrUnavailable wraps errors from a backend whose client could not be
	// initialized at startup. Operations keep failing with it; the process
	// stays up and reports the state through the health check.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Backend is the uniform put/get contract over a durable store.
//
// Put must be idempotent under retry: writing the same id+content twice leaves
// an equivalent record. A write to an existing id overwrites it entirely.
// Get maps a backend-specific missing record to ErrNotFound; any other error
// means the operation itself failed.
//
// The contract deliberately leaves room for a Delete(ctx, id) method; no
// caller needs it yet.
type Backend interface {
	// Name identifies the backend in logs and health output.
	Name() string

	Put(ctx context.Context, id, content string) error
	Get(ctx context.Context, id string) (string, error)

	// Ping performs the cheapest backend-specific reachability probe
	// without reading or writing a document.
	Ping(ctx context.Context) error
}
