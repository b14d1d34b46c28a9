package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-mdshelf/internal/directories"
	"github.com/goliatone/go-mdshelf/internal/library"
	"github.com/goliatone/go-mdshelf/internal/logging"
	"github.com/goliatone/go-mdshelf/internal/metrics"
	"github.com/goliatone/go-mdshelf/internal/progress"
	"github.com/goliatone/go-mdshelf/pkg/interfaces"
)

const (
	defaultBasePath    = "/api"
	defaultMetricsPath = "/metrics"
)

// API serves the library, directory and progress endpoints.
type API struct {
	basePath    string
	metricsPath string
	library     library.Service
	directories directories.Service
	progress    progress.Service
	logger      interfaces.Logger
	recorder    *metrics.Recorder
	gatherer    prometheus.Gatherer

	directoryCommands DirectoryCommands
	progressCommands  ProgressCommands
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API. Services left unset answer 503 on their routes.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath:    defaultBasePath,
		metricsPath: defaultMetricsPath,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	api.defaultCommands()
	return api
}

// WithBasePath overrides the base API path.
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLibraryService wires scan, read and render.
func WithLibraryService(service library.Service) Option {
	return func(api *API) {
		api.library = service
	}
}

// WithDirectoryService wires the directory registry.
func WithDirectoryService(service directories.Service) Option {
	return func(api *API) {
		api.directories = service
	}
}

// WithProgressService wires read status and bookmarks.
func WithProgressService(service progress.Service) Option {
	return func(api *API) {
		api.progress = service
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithMetrics records request metrics on recorder and serves gatherer at
// path. An empty path keeps the default.
func WithMetrics(recorder *metrics.Recorder, gatherer prometheus.Gatherer, path string) Option {
	return func(api *API) {
		api.recorder = recorder
		api.gatherer = gatherer
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.metricsPath = trimmed
		}
	}
}

// Register attaches the API routes to mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerLibraryRoutes(mux, base)
	api.registerDirectoryRoutes(mux, base)
	api.registerProgressRoutes(mux, base)

	if api.gatherer != nil {
		mux.Handle("GET "+joinPath(api.metricsPath, ""), metrics.Handler(api.gatherer))
	}
	return nil
}

// Handler returns a mux with every route registered, wrapped in request
// logging, panic recovery and, when configured, request metrics.
func (api *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}

	var handler http.Handler = mux
	handler = recoverer(api.logger, handler)
	if api.recorder != nil {
		handler = api.recorder.Middleware(handler)
	}
	return requestLogger(api.logger, handler), nil
}
