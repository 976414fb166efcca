package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo describes a single stored entry.
type FileInfo struct {
	Name      string    // base name of the entry
	Size      int64     // size in bytes
	CreatedAt time.Time // status-change time, or the closest the backend can offer
	IsDir     bool
}

// Storage is the narrow filesystem capability the handler operates through.
// Paths are slash-separated and already resolved by the caller; implementations
// never apply their own path joining beyond mapping to backend keys.
type Storage interface {
	// Stat returns metadata for the entry at path.
	Stat(ctx context.Context, path string) (FileInfo, error)

	// List enumerates the immediate entries of the directory at path.
	// Returns ErrNotExist if the directory is absent and ErrNotDirectory
	// if path exists but is not a directory.
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens the file at path for reading. The caller closes the reader.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write stores data at path, fully replacing any existing content.
	Write(ctx context.Context, path string, data []byte) error

	// Rename moves the entry at oldpath to newpath within the same backend.
	Rename(ctx context.Context, oldpath, newpath string) error

	// Delete removes the file at path.
	Delete(ctx context.Context, path string) error

	// MkdirAll creates the directory at path along with missing ancestors.
	// Backends without real directories treat this as a no-op.
	MkdirAll(ctx context.Context, path string) error
}
