package filegate

import (
	"context"
	"net/http"
)

type uploadedFilesKey struct{}

// WithUploadedFiles returns a request carrying the decorated upload batch in
// its context. The upload coordinator attaches the batch before running
// post-processing steps.
func WithUploadedFiles(r *http.Request, files []UploadedFile) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), uploadedFilesKey{}, files))
}

// UploadedFiles extracts the upload batch attached to the request, if any.
// Each file's StoragePath is the absolute path it was written to.
func UploadedFiles(r *http.Request) []UploadedFile {
	files, _ := r.Context().Value(uploadedFilesKey{}).([]UploadedFile)
	return files
}
