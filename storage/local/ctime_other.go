//go:build !linux && !darwin

package local

import (
	"io/fs"
	"time"
)

// createdAt falls back to the modification time on platforms without a
// portable status-change timestamp.
func createdAt(info fs.FileInfo) time.Time {
	return info.ModTime()
}
