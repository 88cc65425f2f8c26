package server

import (
	"time"

	"github.com/giantswarm/kube-explorer/internal/catalog"
)

// KindInfo describes one kind of the catalog.
type KindInfo struct {
	Kind        catalog.Kind `json:"kind"`
	DisplayName string       `json:"displayName"`
	Icon        string       `json:"icon"`
	Count       int          `json:"count"`
	Categories  []string     `json:"categories,omitempty"`
}

// KindsResponse lists the kinds of a catalog in catalog order.
type KindsResponse struct {
	Revision  string     `json:"revision"`
	FetchedAt time.Time  `json:"fetchedAt"`
	Total     int        `json:"total"`
	Kinds     []KindInfo `json:"kinds"`
}

// NewKindsResponse describes every kind of c.
func NewKindsResponse(c *catalog.Catalog, categories catalog.Categories) KindsResponse {
	resp := KindsResponse{
		Revision:  c.Revision(),
		FetchedAt: c.FetchedAt(),
		Total:     c.Total(),
		Kinds:     []KindInfo{},
	}
	for _, kind := range c.Kinds() {
		resp.Kinds = append(resp.Kinds, KindInfo{
			Kind:        kind,
			DisplayName: catalog.DisplayName(kind),
			Icon:        catalog.Icon(kind),
			Count:       c.Len(kind),
			Categories:  categories.For(kind),
		})
	}
	return resp
}

// CategoriesResponse is the category table plus the loaded kinds outside it.
type CategoriesResponse struct {
	Categories    catalog.Categories `json:"categories"`
	Uncategorized []catalog.Kind     `json:"uncategorized"`
}

// NewCategoriesResponse returns the table and the kinds of c it does not cover.
func NewCategoriesResponse(c *catalog.Catalog, categories catalog.Categories) CategoriesResponse {
	uncategorized := categories.Uncategorized(c.Kinds())
	if uncategorized == nil {
		uncategorized = []catalog.Kind{}
	}
	return CategoriesResponse{Categories: categories, Uncategorized: uncategorized}
}

// RecordRef identifies a record within a kind.
type RecordRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// ListResponse names the records of one kind.
type ListResponse struct {
	Kind     catalog.Kind `json:"kind"`
	Revision string       `json:"revision"`
	Items    []RecordRef  `json:"items"`
}

// NewListResponse names the records of kind in c.
func NewListResponse(c *catalog.Catalog, kind catalog.Kind) ListResponse {
	records := c.Get(kind)
	resp := ListResponse{
		Kind:     kind,
		Revision: c.Revision(),
		Items:    make([]RecordRef, 0, len(records)),
	}
	for _, r := range records {
		resp.Items = append(resp.Items, RecordRef{Name: r.Name, Namespace: r.Namespace})
	}
	return resp
}

// SelectResponse is a selection together with the revision it was computed on.
type SelectResponse struct {
	catalog.Selection
	Revision string               `json:"revision"`
	Total    int                  `json:"total"`
	Counts   map[catalog.Kind]int `json:"counts"`
}

// NewSelectResponse wraps sel computed against c.
func NewSelectResponse(c *catalog.Catalog, sel catalog.Selection) SelectResponse {
	return SelectResponse{
		Selection: sel,
		Revision:  c.Revision(),
		Total:     sel.Total(),
		Counts:    sel.Counts(),
	}
}

// FocalRecord is the record relations were computed for.
type FocalRecord struct {
	Kind      catalog.Kind      `json:"kind"`
	Name      string            `json:"name,omitempty"`
	Namespace string            `json:"namespace,omitempty"`
	Labels    map[string]string `json:"labels"`
}

// RelateResponse lists the records related to a focal record.
type RelateResponse struct {
	Revision  string             `json:"revision"`
	Focal     FocalRecord        `json:"focal"`
	Relations []catalog.Relation `json:"relations"`
}

// RelateRequest is the body of POST /api/relate.
type RelateRequest struct {
	Kind   catalog.Kind      `json:"kind"`
	Labels map[string]string `json:"labels"`
}

// StatsResponse carries the dashboard counters.
type StatsResponse struct {
	catalog.Stats
	Revision string `json:"revision"`
}

// RefreshResponse summarizes a freshly loaded catalog.
type RefreshResponse struct {
	Revision  string    `json:"revision"`
	FetchedAt time.Time `json:"fetchedAt"`
	Kinds     int       `json:"kinds"`
	Total     int       `json:"total"`
}

// NewRefreshResponse summarizes c.
func NewRefreshResponse(c *catalog.Catalog) RefreshResponse {
	return RefreshResponse{
		Revision:  c.Revision(),
		FetchedAt: c.FetchedAt(),
		Kinds:     len(c.Kinds()),
		Total:     c.Total(),
	}
}

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Error       string         `json:"error"`
	Suggestions []catalog.Kind `json:"suggestions,omitempty"`
}
