package filegate

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/filegate/storage"
)

// Error is a classified handler failure carrying the HTTP status it maps to.
type Error struct {
	Status  int    // HTTP status code
	Code    string // Machine-readable error code
	Message string // Human-readable message
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// Closed taxonomy of handler failures. Gate denial is deliberately absent:
// it short-circuits to a bare 403 and never reaches the error handler.
var (
	ErrConfiguration = Error{Status: http.StatusInternalServerError, Code: "CONFIGURATION", Message: "Invalid handler configuration"}
	ErrPathEscape    = Error{Status: http.StatusBadRequest, Code: "PATH_ESCAPE", Message: "File outside of storage directory"}
	ErrNotFound      = Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "File not found"}
	ErrDirectory     = Error{Status: http.StatusBadRequest, Code: "DIRECTORY", Message: "Path is not a directory"}
	ErrUpload        = Error{Status: http.StatusBadRequest, Code: "UPLOAD", Message: "Upload failed"}
	ErrIO            = Error{Status: http.StatusInternalServerError, Code: "IO", Message: "Filesystem operation failed"}
	ErrValidation    = Error{Status: http.StatusBadRequest, Code: "VALIDATION", Message: "Invalid request"}
)

// ErrorHandler formats terminal failures onto the wire.
// Every handler failure funnels through this single hook.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, status int, message string)

// defaultErrorHandler writes a plain status code plus message body.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, status int, message string) {
	http.Error(w, message, status)
}

// fail classifies err and reports it through the configured error handler.
// Responses already written win: the pipeline never double-writes.
func (h *Handler) fail(w *responseWriter, r *http.Request, err error) {
	if w.Written() {
		return
	}

	var appErr Error
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, storage.ErrNotExist):
		appErr = ErrNotFound
	case errors.Is(err, storage.ErrNotDirectory):
		appErr = ErrDirectory
	default:
		appErr = ErrIO
	}

	if appErr.Status >= http.StatusInternalServerError {
		h.cfg.log.Error("filegate: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", appErr.Code,
			"error", err,
		)
	}

	h.cfg.errorHandler(w, r, appErr.Status, appErr.Message)
}
