package catalog

import (
	"strings"
)

// Mode tells how a Selection was computed.
type Mode string

const (
	// ModeCategory lists every record of the kinds configured for a category.
	ModeCategory Mode = "category"

	// ModeSearch filters every kind of the catalog by a free-text query.
	ModeSearch Mode = "search"
)

// Selection is the ordered result of Select.
type Selection struct {
	Mode     Mode    `json:"mode"`
	Category string  `json:"category,omitempty"`
	Query    string  `json:"query,omitempty"`
	Groups   []Group `json:"groups"`
}

// Kinds returns the selected kinds in display order.
func (s Selection) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.Groups))
	for _, g := range s.Groups {
		kinds = append(kinds, g.Kind)
	}
	return kinds
}

// Get returns the selected records of kind, or nil if kind was not selected.
func (s Selection) Get(kind Kind) []Record {
	for _, g := range s.Groups {
		if g.Kind == kind {
			return g.Records
		}
	}
	return nil
}

// Counts returns the number of selected records per kind.
func (s Selection) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(s.Groups))
	for _, g := range s.Groups {
		counts[g.Kind] = len(g.Records)
	}
	return counts
}

// Total returns the number of selected records.
func (s Selection) Total() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Records)
	}
	return n
}

// Selector computes selections against a fixed category table.
type Selector struct {
	categories Categories
}

// NewSelector returns a Selector for categories. A nil table selects with
// DefaultCategories.
func NewSelector(categories Categories) *Selector {
	if categories == nil {
		categories = DefaultCategories()
	}
	return &Selector{categories: categories}
}

// Categories returns the table the selector was built with.
func (s *Selector) Categories() Categories {
	return s.categories
}

var defaultSelector = NewSelector(nil)

// Select computes a selection with the default category table.
func Select(c *Catalog, category, query string) Selection {
	return defaultSelector.Select(c, category, query)
}

// Select computes the visible kinds and records.
//
// With an empty query (after trimming) the result holds the kinds configured
// under category, in table order, each with all of its records. Kinds absent
// from the catalog are left out, and an unknown category yields no groups.
//
// With a non-empty query the category is ignored. Every kind of the catalog
// is filtered with Matches and kinds without a match are left out.
func (s *Selector) Select(c *Catalog, category, query string) Selection {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.selectCategory(c, category)
	}
	return searchAll(c, query)
}

func (s *Selector) selectCategory(c *Catalog, name string) Selection {
	sel := Selection{Mode: ModeCategory, Category: name, Groups: []Group{}}

	category, ok := s.categories.Lookup(name)
	if !ok {
		return sel
	}
	sel.Category = category.Name

	for _, kind := range category.Kinds {
		if !c.Has(kind) {
			continue
		}
		sel.Groups = append(sel.Groups, Group{Kind: kind, Records: c.Get(kind)})
	}
	return sel
}

func searchAll(c *Catalog, query string) Selection {
	sel := Selection{Mode: ModeSearch, Query: query, Groups: []Group{}}
	needle := strings.ToLower(query)

	for _, kind := range c.Kinds() {
		var matched []Record
		for _, r := range c.records[kind] {
			if matchesFolded(r, needle) {
				matched = append(matched, r)
			}
		}
		if len(matched) > 0 {
			sel.Groups = append(sel.Groups, Group{Kind: kind, Records: matched})
		}
	}
	return sel
}

// Matches reports whether r contains query, case-insensitively, in its name,
// namespace, status, or any label or annotation key or value. An empty query
// matches every record.
func Matches(r Record, query string) bool {
	return matchesFolded(r, strings.ToLower(strings.TrimSpace(query)))
}

func matchesFolded(r Record, needle string) bool {
	if containsFolded(r.Name, needle) ||
		containsFolded(r.Namespace, needle) ||
		containsFolded(r.Status, needle) {
		return true
	}
	return mapContainsFolded(r.Labels, needle) || mapContainsFolded(r.Annotations, needle)
}

func mapContainsFolded(m map[string]string, needle string) bool {
	for k, v := range m {
		if containsFolded(k, needle) || containsFolded(v, needle) {
			return true
		}
	}
	return false
}

func containsFolded(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
