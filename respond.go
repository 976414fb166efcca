package filegate

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v as an application/json response with 200 OK status.
func (h *Handler) respondJSON(w *responseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already on the wire; all that's left is logging.
		h.cfg.log.Error("filegate: encode response", "path", r.URL.Path, "error", err)
	}
}

// respondEmpty writes a 200 OK with no body.
func respondEmpty(w *responseWriter) {
	w.WriteHeader(http.StatusOK)
}
