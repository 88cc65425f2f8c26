package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrKind      = "kind"
	attrMode      = "mode"
	attrResult    = "result"
)

var durationBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// Metrics provides methods for recording observability metrics.
//
// A zero Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Kubernetes operation metrics
	k8sOperationsTotal   metric.Int64Counter
	k8sOperationDuration metric.Float64Histogram

	// Catalog metrics
	catalogRefreshTotal    metric.Int64Counter
	catalogRefreshDuration metric.Float64Histogram
	catalogRecords         metric.Int64Gauge

	// View metrics
	viewQueriesTotal   metric.Int64Counter
	viewSessionsActive metric.Int64UpDownCounter

	// detailedLabels adds the resource kind to Kubernetes operation metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether the kind label is added to
// Kubernetes operation metrics.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.k8sOperationsTotal, err = meter.Int64Counter(
		"kubernetes_operations_total",
		metric.WithDescription("Total number of Kubernetes API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes_operations_total counter: %w", err)
	}

	m.k8sOperationDuration, err = meter.Float64Histogram(
		"kubernetes_operation_duration_seconds",
		metric.WithDescription("Kubernetes API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes_operation_duration_seconds histogram: %w", err)
	}

	m.catalogRefreshTotal, err = meter.Int64Counter(
		"catalog_refresh_total",
		metric.WithDescription("Total number of catalog refreshes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog_refresh_total counter: %w", err)
	}

	m.catalogRefreshDuration, err = meter.Float64Histogram(
		"catalog_refresh_duration_seconds",
		metric.WithDescription("Catalog refresh duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog_refresh_duration_seconds histogram: %w", err)
	}

	m.catalogRecords, err = meter.Int64Gauge(
		"catalog_records",
		metric.WithDescription("Number of records in the current catalog per kind"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog_records gauge: %w", err)
	}

	m.viewQueriesTotal, err = meter.Int64Counter(
		"view_queries_total",
		metric.WithDescription("Total number of view selections by mode and result"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create view_queries_total counter: %w", err)
	}

	m.viewSessionsActive, err = meter.Int64UpDownCounter(
		"view_sessions_active",
		metric.WithDescription("Number of tracked view sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create view_sessions_active counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)

	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordK8sOperation records a Kubernetes API call. The kind label is only
// attached when detailed labels are enabled.
func (m *Metrics) RecordK8sOperation(ctx context.Context, operation, kind, status string, duration time.Duration) {
	if m == nil || m.k8sOperationsTotal == nil || m.k8sOperationDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels {
		attrs = append(attrs, attribute.String(attrKind, kind))
	}

	m.k8sOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.k8sOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCatalogRefresh records one catalog build with its outcome.
func (m *Metrics) RecordCatalogRefresh(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.catalogRefreshTotal == nil || m.catalogRefreshDuration == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	m.catalogRefreshTotal.Add(ctx, 1, attrs)
	m.catalogRefreshDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordCatalogRecords sets the record count gauge for every kind in counts.
// The set of kinds is bounded by what the API server serves.
func (m *Metrics) RecordCatalogRecords(ctx context.Context, counts map[string]int) {
	if m == nil || m.catalogRecords == nil {
		return
	}

	for kind, n := range counts {
		m.catalogRecords.Record(ctx, int64(n), metric.WithAttributes(attribute.String(attrKind, kind)))
	}
}

// RecordViewQuery records a view selection by mode and result.
func (m *Metrics) RecordViewQuery(ctx context.Context, mode, result string) {
	if m == nil || m.viewQueriesTotal == nil {
		return
	}

	m.viewQueriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrMode, mode),
		attribute.String(attrResult, result),
	))
}

// IncrementViewSessions increments the tracked view sessions counter.
func (m *Metrics) IncrementViewSessions(ctx context.Context) {
	if m == nil || m.viewSessionsActive == nil {
		return
	}
	m.viewSessionsActive.Add(ctx, 1)
}

// DecrementViewSessions decrements the tracked view sessions counter.
func (m *Metrics) DecrementViewSessions(ctx context.Context) {
	if m == nil || m.viewSessionsActive == nil {
		return
	}
	m.viewSessionsActive.Add(ctx, -1)
}
