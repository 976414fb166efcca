package filegate

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/filegate/storage"
)

// ListingEntry is the projection of one directory entry returned by list.
type ListingEntry struct {
	Name      string    `json:"name"`
	Ext       string    `json:"ext"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// list enumerates the immediate entries of the storage root.
// A root that does not exist yet is indistinguishable from an empty one and
// yields an empty listing, not an error.
func (h *Handler) list(w *responseWriter, r *http.Request, s *settings) {
	infos, err := s.store.List(r.Context(), s.root)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		h.respondJSON(w, r, []ListingEntry{})
		return
	case errors.Is(err, storage.ErrNotDirectory):
		h.fail(w, r, ErrDirectory)
		return
	case err != nil:
		h.fail(w, r, err)
		return
	}

	entries := make([]ListingEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, ListingEntry{
			Name:      info.Name,
			Ext:       extension(info.Name),
			Size:      info.Size,
			CreatedAt: info.CreatedAt,
		})
	}
	h.respondJSON(w, r, entries)
}

// extension returns the lowercase file extension without the leading dot.
func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
