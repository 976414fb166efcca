package storage

import "errors"

var (
	// ErrNotExist indicates the requested file or directory does not exist.
	ErrNotExist = errors.New("file does not exist")

	// ErrNotDirectory indicates the path exists but is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrInvalidConfig indicates a backend was constructed with invalid configuration.
	ErrInvalidConfig = errors.New("invalid storage configuration")
)
