package server

import (
	"errors"
	"time"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/instrumentation"
	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/logging"
)

const (
	// DefaultAllowedOrigin is the development origin of the dashboard.
	DefaultAllowedOrigin = "http://localhost:3000"

	// DefaultViewSessionTTL is how long an idle view session is remembered.
	DefaultViewSessionTTL = 10 * time.Minute

	// DefaultMaxRequestBytes caps request bodies.
	DefaultMaxRequestBytes = 1 << 20

	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 30 * time.Second
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithLoader sets the catalog loader.
func WithLoader(loader *k8s.Loader) Option {
	return func(sc *ServerContext) error {
		if loader == nil {
			return ErrMissingLoader
		}
		sc.loader = loader
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the server configuration.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config
		return nil
	}
}

// WithServerName sets the server name.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithCategories sets the category table used for selections.
func WithCategories(categories catalog.Categories) Option {
	return func(sc *ServerContext) error {
		sc.categories = categories
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingLoader  = errors.New("catalog loader is required")
	ErrMissingLogger  = errors.New("logger is required")
	ErrMissingConfig  = errors.New("configuration is required")
	ErrServerShutdown = errors.New("server context has been shutdown")

	// ErrViewSuperseded is returned for a selection overtaken by a newer
	// request of the same view session.
	ErrViewSuperseded = errors.New("view request superseded by a newer one")
)
