package filegate

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/dmitrymomot/filegate/storage"
)

// get streams the file at the resolved path back to the client.
func (h *Handler) get(w *responseWriter, r *http.Request, s *settings, param string) {
	path, err := resolveWithin(s.root, param)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rc, err := s.store.Read(r.Context(), path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			h.fail(w, r, ErrNotFound)
			return
		}
		h.fail(w, r, err)
		return
	}
	defer func() { _ = rc.Close() }()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		// Response is underway; nothing to send, just record the failure.
		h.cfg.log.Error("filegate: stream file", "path", param, "error", err)
	}
}
