package filegate

import (
	"errors"
	"net/http"
	"path"
	"path/filepath"

	"github.com/dmitrymomot/filegate/storage"
)

// DestinationHeader carries the target name for move operations.
const DestinationHeader = "Destination"

// move renames the file at the resolved path. The destination is reduced to
// its base name and joined with the source's directory, so a move can never
// leave the directory the file already lives in.
func (h *Handler) move(w *responseWriter, r *http.Request, s *settings, param string) {
	if param == "" {
		h.fail(w, r, ErrValidation.WithMessage("No file path specified"))
		return
	}

	dest := r.Header.Get(DestinationHeader)
	if dest == "" {
		h.fail(w, r, ErrValidation.WithMessage("No destination specified"))
		return
	}

	src, err := resolveWithin(s.root, param)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	target := filepath.Join(filepath.Dir(src), path.Base(path.Clean("/"+dest)))

	if err := s.store.Rename(r.Context(), src, target); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			h.fail(w, r, ErrNotFound)
			return
		}
		h.fail(w, r, err)
		return
	}
	respondEmpty(w)
}
