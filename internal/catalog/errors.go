package catalog

import "errors"

var (
	// ErrNotLoaded is returned by Store.Load before the first snapshot has been published.
	ErrNotLoaded = errors.New("resource catalog has not been loaded yet")

	// ErrUnknownKind is returned when a lookup names a kind the snapshot does not hold.
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrRecordNotFound is returned when a named record does not exist in its kind.
	ErrRecordNotFound = errors.New("resource not found")
)
