package k8s

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/instrumentation"
	"github.com/giantswarm/kube-explorer/internal/logging"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Client gives access to the cluster. Required.
	Client Client

	// Store receives every successfully built catalog. A new store is
	// created when nil.
	Store *catalog.Store

	// Categories fixes the leading kind order of the catalog. Defaults to
	// catalog.DefaultCategories.
	Categories catalog.Categories

	Discovery DiscoveryOptions

	// Concurrency bounds how many kinds are listed at once.
	Concurrency int

	// ListTimeout bounds the listing of a single kind.
	ListTimeout time.Duration

	// PageSize is the list page size.
	PageSize int64

	Logger  logging.Logger
	Metrics *instrumentation.Metrics

	// Now is used for ages and revisions. Defaults to time.Now.
	Now func() time.Time
}

// Loader builds catalogs from the cluster and publishes them to a Store.
type Loader struct {
	config LoaderConfig
	group  singleflight.Group

	mu        sync.RWMutex
	objects   map[objectKey]*unstructured.Unstructured
	resources map[catalog.Kind]Resource
}

type objectKey struct {
	kind      catalog.Kind
	namespace string
	name      string
}

// kindResult is the outcome of listing one kind.
type kindResult struct {
	resource Resource
	objects  []unstructured.Unstructured
	err      error
}

// NewLoader validates config and returns a Loader.
func NewLoader(config LoaderConfig) (*Loader, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("loader requires a kubernetes client")
	}
	if config.Store == nil {
		config.Store = catalog.NewStore()
	}
	if config.Categories == nil {
		config.Categories = catalog.DefaultCategories()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultListConcurrency
	}
	if config.ListTimeout <= 0 {
		config.ListTimeout = DefaultListTimeout
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.Logger == nil {
		config.Logger = logging.DefaultLogger()
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Loader{config: config}, nil
}

// ClusterContext returns the kubeconfig context the loader reads from.
func (l *Loader) ClusterContext() string {
	return l.config.Client.CurrentContext()
}

// Store returns the store the loader publishes to.
func (l *Loader) Store() *catalog.Store {
	return l.config.Store
}

// Refresh builds a new catalog and swaps it into the store. Concurrent
// callers share a single build. On failure the previous catalog stays in
// place.
func (l *Loader) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	// The build must outlive a caller that gives up; others may be waiting on it.
	buildCtx := context.WithoutCancel(ctx)

	ch := l.group.DoChan("refresh", func() (interface{}, error) {
		return l.refresh(buildCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*catalog.Catalog), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) refresh(ctx context.Context) (*catalog.Catalog, error) {
	ctx, span := instrumentation.StartSpan(ctx, "catalog.refresh")
	defer span.End()

	start := time.Now()
	logger := l.config.Logger

	c, objects, resources, failed, err := l.build(ctx)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		l.config.Metrics.RecordCatalogRefresh(ctx, instrumentation.StatusError, time.Since(start))
		logger.Error("catalog refresh failed", logging.SanitizedErr(err), logging.Duration(time.Since(start)))
		return nil, err
	}

	l.mu.Lock()
	l.config.Store.Swap(c)
	l.objects = objects
	l.resources = resources
	l.mu.Unlock()

	status := instrumentation.StatusSuccess
	if failed > 0 {
		status = instrumentation.StatusPartial
	}
	l.config.Metrics.RecordCatalogRefresh(ctx, status, time.Since(start))

	counts := make(map[string]int, len(resources))
	for kind := range resources {
		counts[kind.String()] = c.Len(kind)
	}
	l.config.Metrics.RecordCatalogRecords(ctx, counts)

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().WithRevision(c.Revision()).Build()...)
	instrumentation.SetSpanSuccess(span)

	logger.Info("catalog refreshed",
		logging.Revision(c.Revision()),
		"kinds", len(c.Kinds()),
		logging.Count(c.Total()),
		"failed_kinds", failed,
		logging.Duration(time.Since(start)))

	return c, nil
}

// build discovers and lists every kind. It returns the catalog, the raw
// objects, the resources that were listed and the number of kinds whose list
// failed.
func (l *Loader) build(ctx context.Context) (*catalog.Catalog, map[objectKey]*unstructured.Unstructured, map[catalog.Kind]Resource, int, error) {
	disc, err := l.config.Client.Discovery()
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	dyn, err := l.config.Client.Dynamic()
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("%w: %w", ErrList, err)
	}

	discovered, err := l.discover(ctx, disc)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	results := make([]kindResult, len(discovered.Resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.Concurrency)
	for i, res := range discovered.Resources {
		g.Go(func() error {
			objs, err := l.list(gctx, dyn, res)
			results[i] = kindResult{resource: res, objects: objs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	now := l.config.Now()
	builder := catalog.NewBuilder().
		WithFetchedAt(now).
		WithRevision(ulid.MustNew(ulid.Timestamp(now), rand.Reader).String())

	objects := make(map[objectKey]*unstructured.Unstructured)
	resources := make(map[catalog.Kind]Resource, len(results))
	var failed int
	var errs []error

	for _, res := range l.order(results) {
		if res.err != nil {
			failed++
			errs = append(errs, res.err)
			l.config.Logger.Warn("listing kind failed, leaving it out",
				logging.Kind(res.resource.Kind.String()),
				logging.SanitizedErr(res.err))
			continue
		}
		resources[res.resource.Kind] = res.resource

		records := make([]catalog.Record, 0, len(res.objects))
		for i := range res.objects {
			obj := &res.objects[i]
			records = append(records, FormatRecord(res.resource.Kind, obj, now))
			objects[objectKey{res.resource.Kind, obj.GetNamespace(), obj.GetName()}] = obj
		}
		slices.SortFunc(records, func(a, b catalog.Record) int {
			if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
				return c
			}
			return strings.Compare(a.Name, b.Name)
		})
		builder.Add(res.resource.Kind, records...)
	}

	if len(results) > 0 && failed == len(results) {
		return nil, nil, nil, failed, fmt.Errorf("%w: %w", ErrList, errors.Join(errs...))
	}

	return builder.Build(), objects, resources, failed, nil
}

func (l *Loader) discover(ctx context.Context, disc discovery.DiscoveryInterface) (DiscoveryResult, error) {
	_, span := instrumentation.StartK8sSpan(ctx, instrumentation.OperationDiscover, "")
	defer span.End()

	start := time.Now()
	result, err := DiscoverResources(disc, l.config.Discovery)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		l.config.Metrics.RecordK8sOperation(ctx, instrumentation.OperationDiscover, "", instrumentation.StatusError, time.Since(start))
		return result, err
	}
	l.config.Metrics.RecordK8sOperation(ctx, instrumentation.OperationDiscover, "", instrumentation.StatusSuccess, time.Since(start))

	if len(result.FailedGroups) > 0 {
		l.config.Logger.Warn("some API groups could not be discovered",
			"groups", strings.Join(result.FailedGroups, ","))
	}
	instrumentation.SetSpanSuccess(span)
	return result, nil
}

// list fetches every object of res across all namespaces, following
// continue tokens.
func (l *Loader) list(ctx context.Context, dyn dynamic.Interface, res Resource) ([]unstructured.Unstructured, error) {
	ctx, cancel := context.WithTimeout(ctx, l.config.ListTimeout)
	defer cancel()

	ctx, span := instrumentation.StartK8sSpan(ctx, instrumentation.OperationList, res.Kind.String())
	defer span.End()

	start := time.Now()
	var client dynamic.ResourceInterface = dyn.Resource(res.GVR)
	if res.Namespaced {
		client = dyn.Resource(res.GVR).Namespace(metav1.NamespaceAll)
	}

	var items []unstructured.Unstructured
	opts := metav1.ListOptions{Limit: l.config.PageSize}
	for {
		list, err := client.List(ctx, opts)
		if err != nil {
			err = fmt.Errorf("list %s: %w", res.Kind, err)
			instrumentation.SetSpanError(span, err)
			l.config.Metrics.RecordK8sOperation(ctx, instrumentation.OperationList, res.Kind.String(), instrumentation.StatusError, time.Since(start))
			return nil, err
		}
		items = append(items, list.Items...)
		if list.GetContinue() == "" {
			break
		}
		opts.Continue = list.GetContinue()
	}

	l.config.Metrics.RecordK8sOperation(ctx, instrumentation.OperationList, res.Kind.String(), instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)
	return items, nil
}

// order puts configured kinds first in category order, then the remaining
// kinds sorted by name.
func (l *Loader) order(results []kindResult) []kindResult {
	rank := make(map[catalog.Kind]int)
	for i, k := range l.config.Categories.Order() {
		rank[k] = i
	}

	ordered := slices.Clone(results)
	slices.SortStableFunc(ordered, func(a, b kindResult) int {
		ra, aok := rank[a.resource.Kind]
		rb, bok := rank[b.resource.Kind]
		switch {
		case aok && bok:
			return ra - rb
		case aok:
			return -1
		case bok:
			return 1
		}
		return strings.Compare(a.resource.Kind.String(), b.resource.Kind.String())
	})
	return ordered
}

// Object returns a copy of the raw object behind a record of the current
// catalog. An empty namespace matches the first object with that name.
func (l *Loader) Object(kind catalog.Kind, namespace, name string) (*unstructured.Unstructured, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.objects == nil {
		return nil, catalog.ErrNotLoaded
	}
	if _, ok := l.resources[kind]; !ok {
		return nil, catalog.ErrUnknownKind
	}

	if namespace != "" {
		if obj, ok := l.objects[objectKey{kind, namespace, name}]; ok {
			return obj.DeepCopy(), nil
		}
		return nil, catalog.ErrRecordNotFound
	}

	// Resolve through the catalog so the match is deterministic.
	c, err := l.config.Store.Load()
	if err != nil {
		return nil, err
	}
	r, err := c.Find(kind, "", name)
	if err != nil {
		return nil, err
	}
	if obj, ok := l.objects[objectKey{kind, r.Namespace, r.Name}]; ok {
		return obj.DeepCopy(), nil
	}
	return nil, catalog.ErrRecordNotFound
}

// Resource returns the discovered resource backing kind in the current catalog.
func (l *Loader) Resource(kind catalog.Kind) (Resource, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.resources[kind]
	return r, ok
}
