package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrymomot/filegate/storage"
)

// Compile-time check that Storage implements the storage.Storage interface.
var _ storage.Storage = (*Storage)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Storage operates directly on the local filesystem.
// The zero value is not usable; construct with New.
type Storage struct{}

// New creates a local filesystem storage backend.
func New() *Storage {
	return &Storage{}
}

// Stat returns metadata for the entry at path.
func (s *Storage) Stat(ctx context.Context, path string) (storage.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return storage.FileInfo{}, classify(err, path)
	}
	return fileInfo(info), nil
}

// List enumerates the immediate entries of the directory at path.
func (s *Storage) List(ctx context.Context, path string) ([]storage.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(err, path)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotDirectory, path)
	}

	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}

	entries := make([]storage.FileInfo, 0, len(dirents))
	for _, dirent := range dirents {
		info, err := dirent.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info; skip it.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", dirent.Name(), err)
		}
		entries = append(entries, fileInfo(info))
	}
	return entries, nil
}

// Read opens the file at path for reading.
func (s *Storage) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classify(err, path)
	}
	return f, nil
}

// Write stores data at path, fully replacing any existing content.
// The write lands in a temporary file in the destination directory and is
// renamed into place, so readers never observe a partially written file.
func (s *Storage) Write(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Rename moves the entry at oldpath to newpath.
func (s *Storage) Rename(ctx context.Context, oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err != nil {
		return classify(err, oldpath)
	}
	return nil
}

// Delete removes the file at path.
func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return classify(err, path)
	}
	return nil
}

// MkdirAll creates the directory at path along with missing ancestors.
func (s *Storage) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// classify maps os errors to the shared storage sentinels.
func classify(err error, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", storage.ErrNotExist, path)
	}
	return err
}

func fileInfo(info fs.FileInfo) storage.FileInfo {
	return storage.FileInfo{
		Name:      info.Name(),
		Size:      info.Size(),
		CreatedAt: createdAt(info),
		IsDir:     info.IsDir(),
	}
}
