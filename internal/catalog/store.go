package catalog

import "sync/atomic"

// Store publishes the current snapshot. Readers always see either the
// previous or the next catalog in full.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Load returns the current snapshot, or ErrNotLoaded if none was published.
func (s *Store) Load() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrNotLoaded
	}
	return c, nil
}

// Swap publishes c and returns the snapshot it replaced, if any.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.current.Swap(c)
}

// Loaded reports whether a snapshot has been published.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
