//go:build darwin

package local

import (
	"io/fs"
	"syscall"
	"time"
)

// createdAt reports the status-change time of the entry. Files in this store
// are immutable once written, so ctime is a faithful creation-time proxy.
func createdAt(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	}
	return info.ModTime()
}
