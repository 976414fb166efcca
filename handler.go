package filegate

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/filegate/storage/local"
)

// MethodMove is the HTTP method mapped to the move operation.
const MethodMove = "MOVE"

// Handler is a mountable file-storage CRUD endpoint. It dispatches by HTTP
// method and path parameter presence, gates each operation through its
// configured authorization chain, and confines every filesystem access to
// the resolved storage root.
//
// The base configuration is immutable after New; per-request state lives in
// an ephemeral settings clone, so any number of requests may run
// concurrently.
type Handler struct {
	cfg config
}

// New creates a handler from the given options. A storage root must be set
// with WithRoot or WithRootFunc before the handler serves its first request.
func New(opts ...Option) *Handler {
	cfg := config{
		naming: NameUpload,
		gates: map[Operation]Gate{
			// Renaming is destructive enough to be opt-in.
			OpMove: Deny(),
		},
		errorHandler: defaultErrorHandler,
		store:        local.New(),
		parse:        parseMultipart,
		pathParam:    defaultPathParam,
		log:          slog.Default(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	// Static roots normalize once here; deferred roots resolve per request.
	if cfg.rootFunc == nil && cfg.rootPath != "" {
		abs, err := absRoot(cfg.basePath, cfg.rootPath)
		if err != nil {
			panic("filegate: " + err.Error())
		}
		cfg.rootPath = abs
	}

	return &Handler{cfg: cfg}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := &responseWriter{ResponseWriter: w}

	defer func() {
		if rec := recover(); rec != nil {
			h.cfg.log.Error("filegate: panic recovered",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
			)
			if !ww.Written() {
				h.cfg.errorHandler(ww, r, http.StatusInternalServerError, "Internal Server Error")
			}
		}
	}()

	s, err := h.resolve(r)
	if err != nil {
		h.fail(ww, r, err)
		return
	}

	param := s.pathParam(r)
	op, ok := h.selectOperation(r.Method, param)
	if !ok {
		h.cfg.errorHandler(ww, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	h.cfg.log.Debug("filegate: dispatch",
		"op", string(op),
		"param", param,
		"root", s.root,
	)

	if !h.runGate(ww, r, s, op) {
		return
	}

	switch op {
	case OpList:
		h.list(ww, r, s)
	case OpGet:
		h.get(ww, r, s, param)
	case OpPost:
		h.upload(ww, r, s)
	case OpMove:
		h.move(ww, r, s, param)
	case OpDelete:
		if param == "" {
			h.fail(ww, r, ErrValidation.WithMessage("No file path specified"))
			return
		}
		h.remove(ww, r, s, param)
	}
}

// selectOperation maps the method and path parameter presence to an
// operation. GET without a parameter lists the root; with one it reads a
// file. DELETE without a parameter still selects the delete operation so the
// missing-path failure is reported per the operation's contract.
func (h *Handler) selectOperation(method, param string) (Operation, bool) {
	switch method {
	case http.MethodGet:
		if param == "" {
			return OpList, true
		}
		return OpGet, true
	case http.MethodPost:
		return OpPost, true
	case MethodMove:
		return OpMove, true
	case http.MethodDelete:
		return OpDelete, true
	default:
		return "", false
	}
}
