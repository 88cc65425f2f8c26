// Package k8s loads the resource catalog from a Kubernetes cluster.
//
// A Client hands out lazily created dynamic and discovery clients for one
// kubeconfig context, or for the pod's service account when running
// in-cluster. The Loader uses them to build catalog snapshots:
//
//   - DiscoverResources enumerates the preferred version of every listable
//     resource, optionally restricted to an allow-list of plural names.
//   - Each kind is listed across all namespaces with bounded concurrency and
//     a per-kind timeout, following continue tokens.
//   - FormatRecord turns every object into a catalog.Record with the
//     kind-specific details the dashboard renders.
//
// A kind whose list fails is left out of the snapshot and logged; the
// refresh only fails when discovery fails or no kind could be listed. Failed
// refreshes never replace the published catalog.
//
// Example usage:
//
//	client, err := k8s.NewClient(&k8s.ClientConfig{Context: "staging"})
//	if err != nil {
//		return err
//	}
//
//	loader, err := k8s.NewLoader(k8s.LoaderConfig{Client: client})
//	if err != nil {
//		return err
//	}
//
//	snapshot, err := loader.Refresh(ctx)
//	if err != nil {
//		return err
//	}
//	pods := snapshot.Get("pods")
package k8s
