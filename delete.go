package filegate

import (
	"fmt"
	"net/http"
)

// remove unlinks the file at the resolved path. Failures, including a missing
// file, surface generically as I/O errors; deletion is not a probe operation.
func (h *Handler) remove(w *responseWriter, r *http.Request, s *settings, param string) {
	path, err := resolveWithin(s.root, param)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := s.store.Delete(r.Context(), path); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", ErrIO, err))
		return
	}
	respondEmpty(w)
}
