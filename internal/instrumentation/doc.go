// Package instrumentation provides OpenTelemetry metrics and tracing for
// kube-explorer.
//
// # Metrics
//
// HTTP:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Kubernetes:
//   - kubernetes_operations_total: Counter of discovery and list calls by operation and status
//   - kubernetes_operation_duration_seconds: Histogram of the same calls
//
// Catalog:
//   - catalog_refresh_total: Counter of catalog builds by status (success, partial, error)
//   - catalog_refresh_duration_seconds: Histogram of catalog build durations
//   - catalog_records: Gauge of records per kind in the current catalog
//
// Views:
//   - view_queries_total: Counter of selections by mode and result (served, superseded)
//   - view_sessions_active: Number of view sessions being tracked
//
// The kind label on Kubernetes operation metrics is only added when
// Config.DetailedLabels is set. The catalog_records gauge always carries it;
// its cardinality is the number of listable kinds.
//
// # Tracing
//
// Spans are created for MCP tool invocations, catalog refreshes, and each
// discovery and list call against the API server. Search queries are never
// recorded on spans, only their length.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: kube-explorer)
//   - METRICS_DETAILED_LABELS: Add the kind label to Kubernetes metrics
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordCatalogRefresh(ctx, instrumentation.StatusSuccess, time.Since(start))
package instrumentation
