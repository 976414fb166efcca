package filegate

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// absRoot normalizes basePath+root into an absolute storage root.
func absRoot(basePath, root string) (string, error) {
	if root == "" {
		return "", ErrConfiguration.WithMessage("Storage root is not configured")
	}
	if basePath != "" && !filepath.IsAbs(root) {
		root = filepath.Join(basePath, root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return abs, nil
}

// resolve produces the per-request settings with a concrete storage root.
// Static roots were normalized at construction; deferred roots are evaluated
// here on every request without touching the base configuration.
func (h *Handler) resolve(r *http.Request) (*settings, error) {
	s := &settings{config: h.cfg, root: h.cfg.rootPath}

	if h.cfg.rootFunc != nil {
		root, err := h.cfg.rootFunc(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration.WithMessage("Storage root resolution failed"), err)
		}
		if root == "" {
			return nil, ErrConfiguration.WithMessage("Storage root resolution returned no path")
		}
		abs, err := absRoot(h.cfg.basePath, root)
		if err != nil {
			return nil, err
		}
		s.root = abs
	}

	if s.root == "" {
		return nil, ErrConfiguration.WithMessage("Storage root is not configured")
	}
	return s, nil
}

// resolveWithin joins root with a caller-supplied relative segment and
// verifies the normalized result stays inside root. The containment check
// runs after normalization; checking before would let ".." segments slip
// through.
func resolveWithin(root, rel string) (string, error) {
	p := filepath.Join(root, filepath.FromSlash(rel))
	if p != root && !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return p, nil
}
