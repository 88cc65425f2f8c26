package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-explorer/internal/instrumentation"
	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/server"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// envValueTrue is the string value used to enable boolean environment variables.
const envValueTrue = "true"

// ClusterConfig holds the settings shared by every command that loads a
// catalog.
type ClusterConfig struct {
	// Kubernetes client settings
	Kubeconfig string
	Context    string
	InCluster  bool
	QPSLimit   float32
	BurstLimit int
	DebugMode  bool

	// Catalog loader settings
	Kinds                []string
	IncludeClusterScoped bool
	ListTimeout          time.Duration
	ListConcurrency      int
}

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	Cluster ClusterConfig

	// Transport settings
	Transport    string
	HTTPAddr     string
	HTTPEndpoint string

	// Dashboard API settings
	AllowedOrigins []string
	ViewSessionTTL time.Duration

	Metrics MetricsServeConfig
}

// MetricsServeConfig holds configuration for the dedicated metrics server.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// Validate checks the settings that can be checked before connecting to a cluster.
func (c ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio:
	case transportStreamableHTTP:
		if err := validateListenAddr(c.HTTPAddr, "--http-addr"); err != nil {
			return err
		}
		if !strings.HasPrefix(c.HTTPEndpoint, "/") {
			return fmt.Errorf("--http-endpoint must start with '/', got %q", c.HTTPEndpoint)
		}
		if strings.HasPrefix(c.HTTPEndpoint, "/api/") || strings.HasPrefix(c.HTTPEndpoint, "/healthz") || c.HTTPEndpoint == "/readyz" {
			return fmt.Errorf("--http-endpoint %q collides with a built-in route", c.HTTPEndpoint)
		}
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", c.Transport)
	}

	if c.Metrics.Enabled {
		if err := validateListenAddr(c.Metrics.Addr, "--metrics-addr"); err != nil {
			return err
		}
		if c.Transport == transportStreamableHTTP && c.Metrics.Addr == c.HTTPAddr {
			return fmt.Errorf("--metrics-addr must differ from --http-addr (%s)", c.HTTPAddr)
		}
	}

	if c.ViewSessionTTL < 0 {
		return fmt.Errorf("--view-session-ttl must not be negative")
	}
	return c.Cluster.Validate()
}

// Validate checks the cluster and loader settings.
func (c ClusterConfig) Validate() error {
	if c.InCluster && c.Kubeconfig != "" {
		return fmt.Errorf("--in-cluster cannot be combined with --kubeconfig")
	}
	if c.InCluster && c.Context != "" {
		return fmt.Errorf("--in-cluster cannot be combined with --context")
	}
	if c.QPSLimit < 0 || c.BurstLimit < 0 {
		return fmt.Errorf("--qps-limit and --burst-limit must not be negative")
	}
	if c.ListTimeout < 0 {
		return fmt.Errorf("--list-timeout must not be negative")
	}
	if c.ListConcurrency < 0 {
		return fmt.Errorf("--list-concurrency must not be negative")
	}
	return nil
}

// validateListenAddr accepts host:port and :port forms.
func validateListenAddr(addr, flagName string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", flagName, addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid %s %q: port must be a number between 0 and 65535", flagName, addr)
	}
	return nil
}

// addClusterFlags registers the cluster and loader flags on cmd.
func addClusterFlags(cmd *cobra.Command, c *ClusterConfig) {
	cmd.Flags().StringVar(&c.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (can also be set via KUBECONFIG env var)")
	cmd.Flags().StringVar(&c.Context, "context", "", "Kubeconfig context to read from (can also be set via KUBE_CONTEXT env var)")
	cmd.Flags().BoolVar(&c.InCluster, "in-cluster", false, "Use in-cluster authentication (service account token) instead of kubeconfig (default: false)")
	cmd.Flags().Float32Var(&c.QPSLimit, "qps-limit", k8s.DefaultQPSLimit, "QPS limit for Kubernetes API calls (default: 20.0)")
	cmd.Flags().IntVar(&c.BurstLimit, "burst-limit", k8s.DefaultBurstLimit, "Burst limit for Kubernetes API calls (default: 30)")
	cmd.Flags().BoolVar(&c.DebugMode, "debug", false, "Enable debug logging (default: false)")

	cmd.Flags().StringSliceVar(&c.Kinds, "kinds", nil, "Only load these resource kinds (plural names, e.g. pods,services); default all")
	cmd.Flags().BoolVar(&c.IncludeClusterScoped, "include-cluster-scoped", false, "Also load cluster-scoped kinds such as nodes")
	cmd.Flags().DurationVar(&c.ListTimeout, "list-timeout", k8s.DefaultListTimeout, "Timeout for listing one kind (can also be set via CATALOG_LIST_TIMEOUT env var)")
	cmd.Flags().IntVar(&c.ListConcurrency, "list-concurrency", k8s.DefaultListConcurrency, "Number of kinds listed in parallel (can also be set via CATALOG_CONCURRENCY env var)")
}

// loadClusterEnvVars fills settings from environment variables. Environment
// variables only apply when the flag was not explicitly set.
func loadClusterEnvVars(cmd *cobra.Command, c *ClusterConfig) {
	if !cmd.Flags().Changed("kubeconfig") {
		loadEnvIfEmpty(&c.Kubeconfig, "KUBECONFIG")
	}
	if !cmd.Flags().Changed("context") {
		loadEnvIfEmpty(&c.Context, "KUBE_CONTEXT")
	}
	if !cmd.Flags().Changed("in-cluster") && os.Getenv("KUBE_IN_CLUSTER") == envValueTrue {
		c.InCluster = true
	}
	if !cmd.Flags().Changed("list-timeout") {
		if d, ok := parseDurationEnv(os.Getenv("CATALOG_LIST_TIMEOUT"), "CATALOG_LIST_TIMEOUT"); ok {
			c.ListTimeout = d
		}
	}
	if !cmd.Flags().Changed("list-concurrency") {
		if n, ok := parseIntEnv(os.Getenv("CATALOG_CONCURRENCY"), "CATALOG_CONCURRENCY"); ok {
			c.ListConcurrency = n
		}
	}
}

// loadEnvIfEmpty loads an environment variable into a string pointer if it's empty.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}

// parseDurationEnv parses a duration from an environment variable value.
// Returns the parsed duration and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseDurationEnv(value, envName string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s=%q: %v", envName, value, err)
		return 0, false
	}
	return d, true
}

// parseIntEnv parses an integer from an environment variable value.
// Returns the parsed int and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseIntEnv(value, envName string) (int, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s=%q: %v", envName, value, err)
		return 0, false
	}
	return n, true
}

// newLogger returns the process logger. Logs always go to stderr so stdout
// stays free for the stdio transport and one-shot output.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newLoader builds the Kubernetes client and the catalog loader for c.
// metrics may be nil.
func newLoader(c ClusterConfig, logger logging.Logger, metrics *instrumentation.Metrics) (*k8s.Loader, error) {
	client, err := k8s.NewClient(&k8s.ClientConfig{
		KubeconfigPath: c.Kubeconfig,
		Context:        c.Context,
		InCluster:      c.InCluster,
		QPSLimit:       c.QPSLimit,
		BurstLimit:     c.BurstLimit,
		DebugMode:      c.DebugMode,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	loader, err := k8s.NewLoader(k8s.LoaderConfig{
		Client: client,
		Discovery: k8s.DiscoveryOptions{
			IncludeClusterScoped: c.IncludeClusterScoped,
			Kinds:                c.Kinds,
		},
		Concurrency: c.ListConcurrency,
		ListTimeout: c.ListTimeout,
		Logger:      logger,
		Metrics:     metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog loader: %w", err)
	}
	return loader, nil
}

// newServerContext wraps loader for serving.
func newServerContext(ctx context.Context, loader *k8s.Loader, logger logging.Logger, config ServeConfig, provider *instrumentation.Provider) (*server.ServerContext, error) {
	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	if len(config.AllowedOrigins) > 0 {
		serverConfig.AllowedOrigins = config.AllowedOrigins
	}
	if config.ViewSessionTTL > 0 {
		serverConfig.ViewSessionTTL = config.ViewSessionTTL
	}

	return server.NewServerContext(ctx,
		server.WithLoader(loader),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithInstrumentationProvider(provider),
	)
}
