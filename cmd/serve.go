package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-explorer/internal/instrumentation"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/server"
	"github.com/giantswarm/kube-explorer/internal/server/middleware"
	catalogtools "github.com/giantswarm/kube-explorer/internal/tools/catalog"
)

// newServeCmd creates the Cobra command for starting the server.
func newServeCmd() *cobra.Command {
	var (
		config         ServeConfig
		allowedOrigins string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the kube-explorer server",
		Long: `Start the kube-explorer server.

The server loads a catalog of the resources in the cluster and serves it
through the Model Context Protocol (MCP) tools and, with the streamable-http
transport, through the dashboard HTTP API under /api.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport plus the dashboard API

Authentication modes:
  - Kubeconfig (default): Uses standard kubeconfig file authentication
  - In-cluster: Uses service account token when running inside a Kubernetes pod

The catalog is loaded once at startup and again on every refresh request.
When the initial load fails the server keeps running and reports not ready
until a refresh succeeds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadClusterEnvVars(cmd, &config.Cluster)

			if !cmd.Flags().Changed("allowed-origins") {
				loadEnvIfEmpty(&allowedOrigins, "ALLOWED_ORIGINS")
			}
			origins, err := middleware.ValidateAllowedOrigins(allowedOrigins)
			if err != nil {
				return fmt.Errorf("invalid allowed origins: %w", err)
			}
			config.AllowedOrigins = origins

			if !cmd.Flags().Changed("view-session-ttl") {
				if d, ok := parseDurationEnv(os.Getenv("VIEW_SESSION_TTL"), "VIEW_SESSION_TTL"); ok {
					config.ViewSessionTTL = d
				}
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					config.Metrics.Addr = addr
				}
			}
			if !cmd.Flags().Changed("enable-metrics") && os.Getenv("METRICS_ENABLED") == envValueTrue {
				config.Metrics.Enabled = true
			}

			if err := config.Validate(); err != nil {
				return err
			}
			return runServe(config)
		},
	}

	addClusterFlags(cmd, &config.Cluster)

	// Transport flags
	cmd.Flags().StringVar(&config.Transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&config.HTTPEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Dashboard API flags
	cmd.Flags().StringVar(&allowedOrigins, "allowed-origins", server.DefaultAllowedOrigin, "Comma separated origins allowed to call the dashboard API (can also be set via ALLOWED_ORIGINS env var)")
	cmd.Flags().DurationVar(&config.ViewSessionTTL, "view-session-ttl", server.DefaultViewSessionTTL, "How long an idle view session is remembered (can also be set via VIEW_SESSION_TTL env var)")

	// Metrics flags
	cmd.Flags().BoolVar(&config.Metrics.Enabled, "enable-metrics", false, "Serve Prometheus metrics on a dedicated port (requires INSTRUMENTATION_ENABLED=true)")
	cmd.Flags().StringVar(&config.Metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (can also be set via METRICS_ADDR env var)")

	return cmd
}

func runServe(config ServeConfig) error {
	logger := newLogger(config.Cluster.DebugMode)
	slog.SetDefault(logger)
	adapter := logging.NewSlogAdapter(logger)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(shutdownErr))
		}
	}()

	if instrumentationProvider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics", instrumentationConfig.MetricsExporter,
			"tracing", instrumentationConfig.TracingExporter)
	}

	loader, err := newLoader(config.Cluster, adapter, instrumentationProvider.Metrics())
	if err != nil {
		return err
	}

	// A failed initial load is not fatal; readiness stays false until a
	// refresh succeeds.
	if c, err := loader.Refresh(shutdownCtx); err != nil {
		logger.Error("initial catalog load failed", logging.SanitizedErr(err))
	} else {
		logger.Info("catalog loaded",
			logging.Revision(c.Revision()), "kinds", len(c.Kinds()), logging.Count(c.Total()))
	}

	serverContext, err := newServerContext(shutdownCtx, loader, adapter, config, instrumentationProvider)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer(serverContext.Config().ServerName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := catalogtools.RegisterCatalogTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register catalog tools: %w", err)
	}

	switch config.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportStreamableHTTP:
		logger.Info("starting kube-explorer", "transport", config.Transport, "addr", config.HTTPAddr)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, instrumentationProvider, config)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", config.Transport)
	}
}
