package catalog

import (
	"github.com/sahilm/fuzzy"
)

// Suggest returns up to limit kinds of c whose names fuzzy-match kind, best
// match first. It is used to answer lookups of kinds that are not loaded.
func Suggest(c *Catalog, kind string, limit int) []Kind {
	if kind == "" || limit <= 0 {
		return nil
	}

	kinds := c.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	matches := fuzzy.Find(kind, names)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	suggestions := make([]Kind, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, kinds[m.Index])
	}
	return suggestions
}
