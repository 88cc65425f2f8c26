package server

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/instrumentation"
	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/tools/output"
)

// ServerContext encapsulates all dependencies needed by the HTTP API and
// the MCP tools and manages their lifecycle.
type ServerContext struct {
	// Core dependencies
	loader   *k8s.Loader
	selector *catalog.Selector
	views    *ViewTracker
	logger   logging.Logger
	config   *Config

	categories              catalog.Categories
	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: logging.DefaultLogger(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	sc.selector = catalog.NewSelector(sc.categories)
	sc.views = NewViewTracker(sc.config.ViewSessionTTL, sc.Metrics())

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Loader returns the catalog loader.
func (sc *ServerContext) Loader() *k8s.Loader {
	return sc.loader
}

// Store returns the store holding the published catalog.
func (sc *ServerContext) Store() *catalog.Store {
	return sc.loader.Store()
}

// Catalog returns the published catalog.
func (sc *ServerContext) Catalog() (*catalog.Catalog, error) {
	return sc.loader.Store().Load()
}

// Selector returns the selector bound to the configured category table.
func (sc *ServerContext) Selector() *catalog.Selector {
	return sc.selector
}

// Categories returns the configured category table.
func (sc *ServerContext) Categories() catalog.Categories {
	return sc.selector.Categories()
}

// Views returns the view session tracker.
func (sc *ServerContext) Views() *ViewTracker {
	return sc.views
}

// Logger returns the logger.
func (sc *ServerContext) Logger() logging.Logger {
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	return sc.config
}

// InstrumentationProvider returns the instrumentation provider, which may be nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	return sc.instrumentationProvider
}

// Metrics returns the metrics recorder, or nil when instrumentation is not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.instrumentationProvider == nil {
		return nil
	}
	return sc.instrumentationProvider.Metrics()
}

// InClusterMode reports whether the catalog is read with the pod's service account.
func (sc *ServerContext) InClusterMode() bool {
	return sc.loader != nil && sc.loader.ClusterContext() == k8s.InClusterContext
}

// Select computes a selection against the published catalog on behalf of a
// view session. A request that was overtaken by a newer one of the same
// session fails with ErrViewSuperseded.
func (sc *ServerContext) Select(ctx context.Context, session, category, query string) (catalog.Selection, *catalog.Catalog, error) {
	generation := sc.views.Begin(session)

	c, err := sc.Catalog()
	if err != nil {
		return catalog.Selection{}, nil, err
	}

	sel := sc.selector.Select(c, category, query)

	if !sc.views.Current(session, generation) {
		sc.Metrics().RecordViewQuery(ctx, string(sel.Mode), instrumentation.ViewResultSuperseded)
		return catalog.Selection{}, nil, ErrViewSuperseded
	}
	sc.Metrics().RecordViewQuery(ctx, string(sel.Mode), instrumentation.ViewResultServed)
	return sel, c, nil
}

// Shutdown cancels the server context and drops all view sessions.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	if sc.views != nil {
		sc.views.Flush()
	}
	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.loader == nil {
		return ErrMissingLoader
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// AllowedOrigins are the browser origins granted CORS access to the API.
	AllowedOrigins []string `json:"allowedOrigins"`

	// ViewSessionTTL is how long an idle view session is remembered.
	ViewSessionTTL time.Duration `json:"viewSessionTTL"`

	// MaxRequestBytes caps request bodies. Zero disables the limit.
	MaxRequestBytes int64 `json:"maxRequestBytes"`

	// Output controls how raw objects are rendered by the details endpoint.
	Output *output.Config `json:"output"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:      "kube-explorer",
		Version:         "0.1.0",
		AllowedOrigins:  []string{DefaultAllowedOrigin},
		ViewSessionTTL:  DefaultViewSessionTTL,
		MaxRequestBytes: DefaultMaxRequestBytes,
		Output:          output.DefaultConfig(),
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.AllowedOrigins = slices.Clone(c.AllowedOrigins)
	if c.Output != nil {
		clone.Output = c.Output.Clone()
	}
	return &clone
}
