package k8s

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"

	"github.com/giantswarm/kube-explorer/internal/catalog"
)

// Resource is a listable resource served by the API server.
type Resource struct {
	// Kind is the plural resource name used as catalog key.
	Kind catalog.Kind

	// ObjectKind is the singular object kind, e.g. "Pod".
	ObjectKind string

	GVR        schema.GroupVersionResource
	Namespaced bool
}

// DiscoveryOptions filters the discovered resources.
type DiscoveryOptions struct {
	// IncludeClusterScoped keeps resources that are not namespaced.
	IncludeClusterScoped bool

	// Kinds, when set, restricts discovery to these plural names.
	Kinds []string
}

// DiscoveryResult is the outcome of DiscoverResources.
type DiscoveryResult struct {
	Resources []Resource

	// FailedGroups lists API groups the server could not describe. They are
	// left out of Resources.
	FailedGroups []string
}

// DiscoverResources lists the preferred version of every resource the server
// can list. Subresources and resources without the list verb are skipped.
// When two groups serve the same plural name, the first one reported wins.
//
// Failures for individual API groups are tolerated and reported in
// FailedGroups. Any other failure wraps ErrDiscovery.
func DiscoverResources(disc discovery.DiscoveryInterface, opts DiscoveryOptions) (DiscoveryResult, error) {
	var result DiscoveryResult

	lists, err := discovery.ServerPreferredResources(disc)
	if err != nil {
		var groupErr *discovery.ErrGroupDiscoveryFailed
		if !errors.As(err, &groupErr) {
			return result, fmt.Errorf("%w: %w", ErrDiscovery, err)
		}
		for gv := range groupErr.Groups {
			result.FailedGroups = append(result.FailedGroups, gv.String())
		}
		slices.Sort(result.FailedGroups)
	}

	var allow map[string]bool
	if len(opts.Kinds) > 0 {
		allow = make(map[string]bool, len(opts.Kinds))
		for _, k := range opts.Kinds {
			allow[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}

	seen := make(map[catalog.Kind]bool)
	for _, list := range lists {
		if list == nil {
			continue
		}
		gv, err := schema.ParseGroupVersion(list.GroupVersion)
		if err != nil {
			continue
		}
		for _, r := range list.APIResources {
			if !listable(r) {
				continue
			}
			if !r.Namespaced && !opts.IncludeClusterScoped {
				continue
			}
			if allow != nil && !allow[r.Name] {
				continue
			}
			kind := catalog.Kind(r.Name)
			if seen[kind] {
				continue
			}
			seen[kind] = true
			result.Resources = append(result.Resources, Resource{
				Kind:       kind,
				ObjectKind: r.Kind,
				GVR:        gv.WithResource(r.Name),
				Namespaced: r.Namespaced,
			})
		}
	}

	return result, nil
}

func listable(r metav1.APIResource) bool {
	if strings.Contains(r.Name, "/") {
		return false
	}
	return slices.Contains(r.Verbs, "list")
}
