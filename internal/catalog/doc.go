// Package catalog holds the in-memory resource index of kube-explorer and
// the pure computations that run over it.
//
// A Catalog is an immutable snapshot of formatted cluster objects grouped by
// kind. It is produced once per fetch by the loader in internal/k8s and
// published through a Store, which swaps the whole snapshot atomically.
//
// Two read-only operations are defined over a snapshot:
//
//   - Select computes the visible kinds and records for a category and an
//     optional free-text query. A non-empty query ignores the category and
//     searches every kind.
//   - Relate finds every record of another kind that shares at least one
//     label key/value pair with a focal label set.
//
// Neither operation performs I/O or holds locks. Both may be called
// concurrently against the same snapshot.
//
// Example usage:
//
//	c := catalog.New(
//		catalog.Group{Kind: "pods", Records: pods},
//		catalog.Group{Kind: "services", Records: services},
//	)
//
//	sel := catalog.Select(c, "Workloads", "")
//	for _, g := range sel.Groups {
//		fmt.Println(g.Kind, len(g.Records))
//	}
//
//	related := catalog.Relate(c, "pods", map[string]string{"app": "web"})
package catalog
