package k8s

import "time"

const (
	// Service account paths - default Kubernetes in-cluster locations
	DefaultServiceAccountPath = "/var/run/secrets/kubernetes.io/serviceaccount"
	DefaultTokenPath          = DefaultServiceAccountPath + "/token"
	DefaultCACertPath         = DefaultServiceAccountPath + "/ca.crt"

	// Default performance settings
	DefaultQPSLimit   = 20.0
	DefaultBurstLimit = 30
	DefaultTimeout    = 30 // seconds

	// In-cluster context name
	InClusterContext = "in-cluster"
)

// Catalog loading defaults.
const (
	// DefaultListConcurrency bounds the number of kinds listed at once.
	DefaultListConcurrency = 8

	// DefaultListTimeout bounds a single kind's list, across all pages.
	DefaultListTimeout = 30 * time.Second

	// DefaultPageSize is the page size used when listing a kind.
	DefaultPageSize = 500
)
