package filegate

import (
	"fmt"
	"net/http"
	"path"
	"path/filepath"
)

// upload coordinates a multi-file upload: parse the body, validate batch
// cardinality, ensure the root directory, then write each file in turn.
// Cardinality is checked for the whole batch before any write, so a rejected
// batch never leaves partial files behind. Writes after the first failure are
// not rolled back; the request reports a single aggregate failure.
func (h *Handler) upload(w *responseWriter, r *http.Request, s *settings) {
	files, err := s.parse(r, s.field)
	if err != nil {
		h.fail(w, r, ErrUpload.WithMessage(err.Error()))
		return
	}
	if len(files) == 0 {
		h.fail(w, r, ErrUpload.WithMessage("No files uploaded"))
		return
	}

	// Writing several files to one named target is never meaningful.
	limit := s.limit
	if s.naming == NameParam {
		limit = 1
	}

	if s.expect > 0 && len(files) < s.expect {
		h.fail(w, r, ErrUpload.WithMessage("Less than expected files uploaded"))
		return
	}
	if limit > 0 && len(files) > limit {
		h.fail(w, r, ErrUpload.WithMessage("More than file limit uploaded"))
		return
	}

	ctx := r.Context()
	if err := s.store.MkdirAll(ctx, s.root); err != nil {
		h.fail(w, r, fmt.Errorf("ensure storage root: %w", err))
		return
	}

	param := s.pathParam(r)

	for i := range files {
		dest, err := h.destination(s, param, &files[i])
		if err != nil {
			h.fail(w, r, err)
			return
		}

		if s.naming == NameParamDir {
			if err := s.store.MkdirAll(ctx, filepath.Dir(dest)); err != nil {
				h.fail(w, r, fmt.Errorf("ensure file directory: %w", err))
				return
			}
		}

		if err := s.store.Write(ctx, dest, files[i].Data); err != nil {
			h.fail(w, r, fmt.Errorf("write %s: %w", files[i].Name, err))
			return
		}
		files[i].StoragePath = dest
	}

	// Post-processing runs unconditionally after a successful batch and may
	// take over the response, suppressing the default payload.
	for _, step := range s.postProcess {
		if err := step(w, WithUploadedFiles(r, files)); err != nil {
			h.fail(w, r, fmt.Errorf("post-processing: %w", err))
			return
		}
		if w.Written() {
			return
		}
	}

	h.respondJSON(w, r, struct{}{})
}

// destination computes a file's storage path per the naming policy.
// Every destination passes the same containment check used for reads, even
// though only the param-derived policies can carry user-controlled segments.
func (h *Handler) destination(s *settings, param string, file *UploadedFile) (string, error) {
	var rel string
	switch s.naming {
	case NameUpload, "":
		rel = path.Base(file.Name)
	case NameParam:
		if param == "" {
			return "", ErrValidation.WithMessage("No file path specified")
		}
		rel = param
	case NameParamDir:
		if param == "" {
			return "", ErrValidation.WithMessage("No file path specified")
		}
		rel = param + "/" + path.Base(file.Name)
	default:
		return "", ErrConfiguration.WithMessage("Unknown naming policy")
	}
	return resolveWithin(s.root, rel)
}
