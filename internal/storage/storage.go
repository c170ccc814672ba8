package storage

import (
	"context"
	"errors"
	"io"
)

// Package storage contains the owner-scoped blob store abstraction.
// Every blob lives inside exactly one owner's namespace; a key is only
// meaningful together with the owner id it was issued for.

var (
	// ErrInvalidName is returned when an original filename carries a
	// parent-directory segment or other path machinery.
	ErrInvalidName = errors.New("filename contains invalid path sequence")
	// ErrNotFound is returned when a key does not resolve to a blob inside
	// the given owner's namespace. Keys that point outside the namespace
	// fail closed with this same error.
	ErrNotFound = errors.New("blob not found")
	// ErrKeyCollision is returned when generated keys kept colliding after
	// the bounded number of retries.
	ErrKeyCollision = errors.New("storage key collision retries exhausted")
)

// BlobInfo describes a stored blob. Key is the generated storage name,
// never derived from user-controlled filename bytes beyond the extension.
type BlobInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// BlobStore persists raw document content under per-owner namespaces.
// Implementations must be safe for concurrent use across owners and must
// never let a malformed key resolve outside its owner's namespace.
type BlobStore interface {
	// Store writes the content and returns the generated key. The original
	// filename contributes only its extension; names containing parent
	// directory segments are rejected with ErrInvalidName. A failed Store
	// leaves no retrievable partial blob.
	Store(ctx context.Context, ownerID string, r io.Reader, originalName, contentType string, size int64) (BlobInfo, error)
	// Load opens the blob for reading. Missing or out-of-namespace keys
	// yield ErrNotFound.
	Load(ctx context.Context, ownerID, key string) (io.ReadCloser, BlobInfo, error)
	// Delete removes the blob. Deleting an absent key is not an error.
	Delete(ctx context.Context, ownerID, key string) error
}
