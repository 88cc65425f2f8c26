package catalog

import (
	"slices"
	"strings"
)

// Category is a named, static group of kinds.
type Category struct {
	Name  string `json:"name"`
	Kinds []Kind `json:"kinds"`
}

// Categories is an ordered category table.
type Categories []Category

// DefaultCategories returns the category table used by the dashboard.
func DefaultCategories() Categories {
	return Categories{
		{
			Name: "Workloads",
			Kinds: []Kind{
				"pods", "deployments", "statefulsets", "daemonsets",
				"jobs", "cronjobs", "replicasets", "replicationcontrollers",
			},
		},
		{
			Name:  "Network",
			Kinds: []Kind{"services", "ingresses", "networkpolicies", "endpoints", "endpointslices"},
		},
		{
			Name:  "Config & Storage",
			Kinds: []Kind{"configmaps", "secrets", "persistentvolumeclaims", "csistoragecapacities"},
		},
		{
			Name:  "RBAC",
			Kinds: []Kind{"serviceaccounts", "roles", "rolebindings"},
		},
		{
			Name:  "Cluster",
			Kinds: []Kind{"resourcequotas", "limitranges", "horizontalpodautoscalers", "poddisruptionbudgets"},
		},
		{
			Name:  "Other",
			Kinds: []Kind{"events", "leases", "controllerrevisions", "podtemplates"},
		},
	}
}

// Lookup finds a category by name. An exact match wins over a
// case-insensitive one.
func (cs Categories) Lookup(name string) (Category, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range cs {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Names returns the category names in table order.
func (cs Categories) Names() []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

// For returns the names of the categories that contain kind.
func (cs Categories) For(kind Kind) []string {
	var names []string
	for _, c := range cs {
		if slices.Contains(c.Kinds, kind) {
			names = append(names, c.Name)
		}
	}
	return names
}

// Order returns every configured kind once, in table order.
func (cs Categories) Order() []Kind {
	seen := make(map[Kind]bool)
	var order []Kind
	for _, c := range cs {
		for _, k := range c.Kinds {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	return order
}

// Uncategorized returns the kinds from kinds that belong to no category,
// keeping their order.
func (cs Categories) Uncategorized(kinds []Kind) []Kind {
	configured := make(map[Kind]bool)
	for _, k := range cs.Order() {
		configured[k] = true
	}
	var out []Kind
	for _, k := range kinds {
		if !configured[k] {
			out = append(out, k)
		}
	}
	return out
}
