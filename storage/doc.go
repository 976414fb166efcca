// Package storage defines the filesystem capability consumed by the filegate
// handler. It is intentionally narrow: stat, list, read, write, rename,
// delete, and directory creation, all keyed by resolved paths.
//
// Two implementations ship with the module:
//   - storage/local: direct operations on the local filesystem
//   - storage/s3: Amazon S3 and S3-compatible object stores
//
// Implementations map their backend's not-found condition to ErrNotExist so
// the handler can distinguish missing files from genuine I/O failures:
//
//	rc, err := store.Read(ctx, path)
//	if errors.Is(err, storage.ErrNotExist) {
//		// 404
//	}
package storage
