package filegate

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/filegate/storage"
)

// Operation identifies one of the five file operations the handler exposes.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpPost   Operation = "post"
	OpMove   Operation = "move"
	OpDelete Operation = "delete"
)

// NamingPolicy governs how an uploaded file's destination is computed.
type NamingPolicy string

const (
	// NameUpload stores each file under its original upload name.
	NameUpload NamingPolicy = "upload"

	// NameParam stores the file under the request's path parameter.
	// Forces an effective upload limit of one file per request.
	NameParam NamingPolicy = "param"

	// NameParamDir stores each file under its original name inside a
	// sub-directory named by the request's path parameter.
	NameParamDir NamingPolicy = "param-dir"
)

// RootFunc derives the storage root from the request.
// Evaluated once per request; the base configuration is never mutated.
type RootFunc func(r *http.Request) (string, error)

// config is the immutable per-endpoint configuration.
type config struct {
	rootPath     string
	basePath     string
	rootFunc     RootFunc
	field        string
	expect       int
	limit        int
	naming       NamingPolicy
	gates        map[Operation]Gate
	postProcess  []GateFunc
	errorHandler ErrorHandler
	store        storage.Storage
	parse        BodyParser
	pathParam    func(r *http.Request) string
	log          *slog.Logger
}

// settings is the ephemeral per-request view of the configuration with the
// storage root made concrete.
type settings struct {
	config
	root string
}

// defaultPathParam extracts the file path parameter from the request.
// Prefers a Go 1.22 wildcard segment named "path"; otherwise the URL path
// with the leading slash trimmed, which covers http.StripPrefix mounting.
func defaultPathParam(r *http.Request) string {
	if p := r.PathValue("path"); p != "" {
		return p
	}
	return strings.Trim(r.URL.Path, "/")
}
