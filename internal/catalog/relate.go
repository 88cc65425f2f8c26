package catalog

import (
	"slices"
)

// Relation is a record related to a focal record through shared labels.
type Relation struct {
	Name             string   `json:"name"`
	Namespace        string   `json:"namespace,omitempty"`
	Kind             Kind     `json:"kind"`
	MatchedLabelKeys []string `json:"matchedLabelKeys"`
}

// Relate returns every record outside focalKind that carries at least one
// label of focalLabels with an identical value.
//
// An empty label set relates to nothing. Results are grouped by kind in
// catalog order, then by record order within the kind. MatchedLabelKeys is
// sorted.
func Relate(c *Catalog, focalKind Kind, focalLabels map[string]string) []Relation {
	relations := []Relation{}
	if len(focalLabels) == 0 {
		return relations
	}

	keys := make([]string, 0, len(focalLabels))
	for k := range focalLabels {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, kind := range c.Kinds() {
		if kind == focalKind {
			continue
		}
		for _, r := range c.records[kind] {
			matched := matchedKeys(keys, focalLabels, r.Labels)
			if len(matched) == 0 {
				continue
			}
			relations = append(relations, Relation{
				Name:             r.Name,
				Namespace:        r.Namespace,
				Kind:             kind,
				MatchedLabelKeys: matched,
			})
		}
	}
	return relations
}

// RelateTo resolves the focal record by kind, namespace and name and relates
// its labels.
func RelateTo(c *Catalog, kind Kind, namespace, name string) (Record, []Relation, error) {
	focal, err := c.Find(kind, namespace, name)
	if err != nil {
		return Record{}, nil, err
	}
	return focal, Relate(c, kind, focal.Labels), nil
}

// keys must be sorted; the result keeps that order.
func matchedKeys(keys []string, focal, labels map[string]string) []string {
	var matched []string
	for _, k := range keys {
		if v, ok := labels[k]; ok && v == focal[k] {
			matched = append(matched, k)
		}
	}
	return matched
}
