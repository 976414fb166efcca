package filegate

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms
// before parts spill to disk (10MB).
const DefaultMaxMemory = 10 << 20

// UploadedFile describes one file extracted from a multipart request body.
// StoragePath is empty until the upload coordinator writes the file.
type UploadedFile struct {
	Name        string // original upload name
	Field       string // multipart field the file arrived in
	Size        int64  // content length in bytes
	Data        []byte // raw content
	StoragePath string // absolute path the file was written to
}

// BodyParser extracts uploaded files from the request body.
// When field is non-empty only files posted in that field are returned.
type BodyParser func(r *http.Request, field string) ([]UploadedFile, error)

// parseMultipart is the default BodyParser built on the standard library's
// multipart reader.
func parseMultipart(r *http.Request, field string) ([]UploadedFile, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("missing content-type header, expected multipart/form-data")
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("malformed content type: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/form-data") {
		return nil, fmt.Errorf("unsupported media type %s, expected multipart/form-data", mediaType)
	}

	// Validate the boundary to reject malformed multipart payloads early.
	boundary, ok := params["boundary"]
	if !ok || !validBoundary(boundary) {
		return nil, fmt.Errorf("invalid multipart boundary")
	}

	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	var files []UploadedFile
	for name, headers := range r.MultipartForm.File {
		if field != "" && name != field {
			continue
		}
		for _, fh := range headers {
			src, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open uploaded file %s: %w", fh.Filename, err)
			}
			data, err := io.ReadAll(src)
			_ = src.Close()
			if err != nil {
				return nil, fmt.Errorf("read uploaded file %s: %w", fh.Filename, err)
			}
			files = append(files, UploadedFile{
				Name:  fh.Filename,
				Field: name,
				Size:  int64(len(data)),
				Data:  data,
			})
		}
	}
	return files, nil
}

// validBoundary enforces RFC 2046 boundary constraints: 1-70 characters from
// a restricted set, not ending in a space.
func validBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 {
		return false
	}
	if strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}
