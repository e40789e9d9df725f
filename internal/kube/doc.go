// Package kube implements the cluster directory for kore.
//
// The directory answers two questions for the UI-state layer: which
// kubeconfig context reaches a given cluster id, and which namespaces that
// cluster currently has. Clusters come from the `clusters:` section of the
// configuration and, unless disabled, from every context of the kubeconfig
// that no configured cluster already claims.
//
// # Namespace Listing
//
// Listings go through client-go. One clientset is cached per cluster and
// rebuilt after a failed call. Concurrent listings of the same cluster are
// collapsed into a single API request, bounded by kube.namespaceTimeout; a
// caller whose context ends stops waiting without cancelling it. Every
// failure, including an unknown cluster id, is returned as a *TransportError
// so callers can treat the directory as a single remote capability.
//
// # Usage Example
//
//	dir := kube.NewDirectory(cfg.Kube, cfg.Clusters)
//	names, err := dir.ListNamespaces(ctx, "prod-eu")
//	if err != nil {
//	    var te *kube.TransportError
//	    errors.As(err, &te)
//	}
//	contextName, ok := dir.ResolveClusterContext("prod-eu")
//
// # Thread Safety
//
// Directory is safe for concurrent use.
package kube
