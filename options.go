package filegate

import (
	"log/slog"
	"net/http"

	envcfg "github.com/dmitrymomot/filegate/config"
	"github.com/dmitrymomot/filegate/storage"
)

// Option configures a Handler during creation.
type Option func(*config)

// WithRoot sets a static storage root. Relative roots are joined with the
// base path and normalized to absolute at construction time.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.rootPath = dir
	}
}

// WithBasePath sets the prefix joined with a relative storage root.
func WithBasePath(dir string) Option {
	return func(c *config) {
		c.basePath = dir
	}
}

// WithRootFunc derives the storage root from each request. The function is
// invoked once per request and must return a non-empty path.
func WithRootFunc(fn RootFunc) Option {
	return func(c *config) {
		c.rootFunc = fn
	}
}

// WithField restricts uploads to the named multipart field.
// An empty name accepts files from any field.
func WithField(name string) Option {
	return func(c *config) {
		c.field = name
	}
}

// WithExpect sets the minimum number of files per upload batch. Zero means
// no minimum.
func WithExpect(n int) Option {
	return func(c *config) {
		c.expect = n
	}
}

// WithLimit sets the maximum number of files per upload batch. Zero means
// no maximum.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

// WithNaming sets the destination naming policy for uploads.
func WithNaming(policy NamingPolicy) Option {
	return func(c *config) {
		c.naming = policy
	}
}

// WithGate sets the authorization gate for an operation. Defaults allow
// every operation except move, which is denied until explicitly opened.
func WithGate(op Operation, gate Gate) Option {
	return func(c *config) {
		c.gates[op] = gate
	}
}

// WithPostProcess appends steps run after a successful upload. Steps receive
// the decorated file batch via UploadedFiles and may take over the response.
func WithPostProcess(steps ...GateFunc) Option {
	return func(c *config) {
		c.postProcess = append(c.postProcess, steps...)
	}
}

// WithErrorHandler replaces the default plain-text error responder.
// Gate denial bypasses it: denial is always a bare 403.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *config) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// WithStorage replaces the local filesystem backend.
func WithStorage(store storage.Storage) Option {
	return func(c *config) {
		if store != nil {
			c.store = store
		}
	}
}

// WithBodyParser replaces the default multipart body parser.
func WithBodyParser(parse BodyParser) Option {
	return func(c *config) {
		if parse != nil {
			c.parse = parse
		}
	}
}

// WithPathParam replaces how the file path parameter is extracted from the
// request. The default reads the "path" wildcard value, falling back to the
// trimmed URL path.
func WithPathParam(fn func(r *http.Request) string) Option {
	return func(c *config) {
		if fn != nil {
			c.pathParam = fn
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// EnvConfig is the environment-variable surface for FromEnv.
type EnvConfig struct {
	Root     string `env:"FILEGATE_ROOT"`
	BasePath string `env:"FILEGATE_BASE_PATH"`
	Field    string `env:"FILEGATE_FIELD"`
	Expect   int    `env:"FILEGATE_EXPECT" envDefault:"0"`
	Limit    int    `env:"FILEGATE_LIMIT" envDefault:"0"`
	Naming   string `env:"FILEGATE_NAMING" envDefault:"upload"`
}

// FromEnv loads root, cardinality, field, and naming settings from
// FILEGATE_* environment variables. Panics if the environment cannot be
// parsed, matching the construction-time failure mode of New.
func FromEnv() Option {
	return func(c *config) {
		var env EnvConfig
		envcfg.MustLoad(&env)

		if env.Root != "" {
			c.rootPath = env.Root
		}
		if env.BasePath != "" {
			c.basePath = env.BasePath
		}
		if env.Field != "" {
			c.field = env.Field
		}
		c.expect = env.Expect
		c.limit = env.Limit
		if env.Naming != "" {
			c.naming = NamingPolicy(env.Naming)
		}
	}
}
