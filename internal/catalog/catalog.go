package catalog

import (
	"slices"
	"time"
)

// Group is an ordered run of records of a single kind.
type Group struct {
	Kind    Kind     `json:"kind"`
	Records []Record `json:"records"`
}

// Catalog is an immutable snapshot of formatted records grouped by kind.
//
// The zero value and a nil *Catalog are both valid empty catalogs.
type Catalog struct {
	revision  string
	fetchedAt time.Time
	kinds     []Kind
	records   map[Kind][]Record
}

// New builds a catalog from groups. Kind order follows the order of first
// appearance; records of repeated kinds are appended. Groups without records
// do not register their kind.
func New(groups ...Group) *Catalog {
	b := NewBuilder()
	for _, g := range groups {
		b.Add(g.Kind, g.Records...)
	}
	return b.Build()
}

// Get returns the records of kind in snapshot order. Unknown kinds yield an
// empty slice.
func (c *Catalog) Get(kind Kind) []Record {
	if c == nil {
		return nil
	}
	return slices.Clone(c.records[kind])
}

// Kinds returns the kinds present in the snapshot in insertion order.
func (c *Catalog) Kinds() []Kind {
	if c == nil {
		return nil
	}
	return slices.Clone(c.kinds)
}

// Has reports whether the snapshot holds at least one record of kind.
func (c *Catalog) Has(kind Kind) bool {
	if c == nil {
		return false
	}
	_, ok := c.records[kind]
	return ok
}

// Len returns the number of records of kind.
func (c *Catalog) Len(kind Kind) int {
	if c == nil {
		return 0
	}
	return len(c.records[kind])
}

// Total returns the number of records across all kinds.
func (c *Catalog) Total() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, recs := range c.records {
		n += len(recs)
	}
	return n
}

// Revision identifies the fetch that produced the snapshot.
func (c *Catalog) Revision() string {
	if c == nil {
		return ""
	}
	return c.revision
}

// FetchedAt is the time the snapshot was taken.
func (c *Catalog) FetchedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.fetchedAt
}

// Find looks up a record by kind, namespace and name. An empty namespace
// matches the first record with the given name.
func (c *Catalog) Find(kind Kind, namespace, name string) (Record, error) {
	if !c.Has(kind) {
		return Record{}, ErrUnknownKind
	}
	for _, r := range c.records[kind] {
		if r.Name != name {
			continue
		}
		if namespace == "" || r.Namespace == namespace {
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

// Builder assembles a Catalog. It is not safe for concurrent use; the Catalog
// it produces is.
type Builder struct {
	revision  string
	fetchedAt time.Time
	kinds     []Kind
	records   map[Kind][]Record
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{records: make(map[Kind][]Record)}
}

// Add appends records to kind. The first Add with records fixes the position
// of the kind in the snapshot order.
func (b *Builder) Add(kind Kind, records ...Record) *Builder {
	if len(records) == 0 {
		return b
	}
	if _, ok := b.records[kind]; !ok {
		b.kinds = append(b.kinds, kind)
	}
	b.records[kind] = append(b.records[kind], records...)
	return b
}

// WithRevision sets the snapshot revision.
func (b *Builder) WithRevision(revision string) *Builder {
	b.revision = revision
	return b
}

// WithFetchedAt sets the snapshot time.
func (b *Builder) WithFetchedAt(t time.Time) *Builder {
	b.fetchedAt = t
	return b
}

// Build returns the Catalog. The builder may keep being used; later changes
// do not affect catalogs already built.
func (b *Builder) Build() *Catalog {
	records := make(map[Kind][]Record, len(b.records))
	for k, recs := range b.records {
		records[k] = slices.Clone(recs)
	}
	return &Catalog{
		revision:  b.revision,
		fetchedAt: b.fetchedAt,
		kinds:     slices.Clone(b.kinds),
		records:   records,
	}
}
