package k8s

import "errors"

var (
	// ErrDiscovery is returned when the API server's resource list cannot
	// be obtained.
	ErrDiscovery = errors.New("resource discovery failed")

	// ErrList is returned when no discovered kind could be listed.
	ErrList = errors.New("resource listing failed")
)
