package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/k8s"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/tools/output"
)

const (
	// RevisionHeader carries the revision of the catalog a response was computed on.
	RevisionHeader = "X-Catalog-Revision"

	// SessionHeader identifies the view session when no session parameter is given.
	SessionHeader = "Mcp-Session-Id"

	maxSuggestions = 3
)

// API serves the dashboard endpoints under /api.
type API struct {
	sc  *ServerContext
	now func() time.Time
}

// NewAPI returns the dashboard API for sc.
func NewAPI(sc *ServerContext) *API {
	return &API{sc: sc, now: time.Now}
}

// Register adds the API routes to mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/kinds", a.handleKinds)
	mux.HandleFunc("GET /api/categories", a.handleCategories)
	mux.HandleFunc("GET /api/list/{kind}", a.handleList)
	mux.HandleFunc("GET /api/details/{kind}/{name}", a.handleDetails)
	mux.HandleFunc("GET /api/select", a.handleSelect)
	mux.HandleFunc("GET /api/relate", a.handleRelateRecord)
	mux.HandleFunc("POST /api/relate", a.handleRelateLabels)
	mux.HandleFunc("GET /api/stats", a.handleStats)
	mux.HandleFunc("POST /api/refresh", a.handleRefresh)
}

func (a *API) handleKinds(w http.ResponseWriter, r *http.Request) {
	c, ok := a.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewKindsResponse(c, a.sc.Categories()))
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	c, ok := a.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewCategoriesResponse(c, a.sc.Categories()))
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	c, ok := a.catalog(w, r)
	if !ok {
		return
	}

	kind := catalog.Kind(r.PathValue("kind"))
	if !c.Has(kind) {
		a.writeError(w, r, catalog.ErrUnknownKind, catalog.Suggest(c, string(kind), maxSuggestions))
		return
	}
	writeJSON(w, http.StatusOK, NewListResponse(c, kind))
}

func (a *API) handleDetails(w http.ResponseWriter, r *http.Request) {
	format, err := output.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c, ok := a.catalog(w, r)
	if !ok {
		return
	}

	kind := catalog.Kind(r.PathValue("kind"))
	obj, err := a.sc.Loader().Object(kind, r.URL.Query().Get("namespace"), r.PathValue("name"))
	if err != nil {
		var suggestions []catalog.Kind
		if errors.Is(err, catalog.ErrUnknownKind) {
			suggestions = catalog.Suggest(c, string(kind), maxSuggestions)
		}
		a.writeError(w, r, err, suggestions)
		return
	}

	body, err := output.RenderObject(obj, format, a.sc.Config().Output)
	if err != nil {
		a.writeError(w, r, err, nil)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (a *API) handleSelect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	session := q.Get("session")
	if session == "" {
		session = r.Header.Get(SessionHeader)
	}

	sel, c, err := a.sc.Select(r.Context(), session, q.Get("category"), q.Get("query"))
	if err != nil {
		a.writeError(w, r, err, nil)
		return
	}
	if notModified(w, r, c) {
		return
	}

	a.sc.Logger().Debug("view selected",
		logging.Category(sel.Category), logging.Query(sel.Query),
		logging.Session(session), logging.Count(sel.Total()))
	writeJSON(w, http.StatusOK, NewSelectResponse(c, sel))
}

func (a *API) handleRelateRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := a.catalog(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	kind := catalog.Kind(q.Get("kind"))
	if kind == "" || q.Get("name") == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "kind and name are required"})
		return
	}

	focal, relations, err := catalog.RelateTo(c, kind, q.Get("namespace"), q.Get("name"))
	if err != nil {
		var suggestions []catalog.Kind
		if errors.Is(err, catalog.ErrUnknownKind) {
			suggestions = catalog.Suggest(c, string(kind), maxSuggestions)
		}
		a.writeError(w, r, err, suggestions)
		return
	}

	writeJSON(w, http.StatusOK, RelateResponse{
		Revision: c.Revision(),
		Focal: FocalRecord{
			Kind:      kind,
			Name:      focal.Name,
			Namespace: focal.Namespace,
			Labels:    nonNilLabels(focal.Labels),
		},
		Relations: relations,
	})
}

func (a *API) handleRelateLabels(w http.ResponseWriter, r *http.Request) {
	var req RelateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	c, err := a.sc.Catalog()
	if err != nil {
		a.writeError(w, r, err, nil)
		return
	}
	setRevision(w, c)

	writeJSON(w, http.StatusOK, RelateResponse{
		Revision:  c.Revision(),
		Focal:     FocalRecord{Kind: req.Kind, Labels: nonNilLabels(req.Labels)},
		Relations: catalog.Relate(c, req.Kind, req.Labels),
	})
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	c, err := a.sc.Catalog()
	if err != nil {
		a.writeError(w, r, err, nil)
		return
	}
	// Ages move with the clock, so stats are never served from a cached revision.
	setRevision(w, c)
	writeJSON(w, http.StatusOK, StatsResponse{
		Stats:    catalog.ComputeStats(c, a.now()),
		Revision: c.Revision(),
	})
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := a.sc.Loader().Refresh(r.Context())
	if err != nil {
		a.writeError(w, r, err, nil)
		return
	}
	setRevision(w, c)
	writeJSON(w, http.StatusOK, NewRefreshResponse(c))
}

// catalog loads the published catalog and answers conditional requests. It
// reports false when the response has already been written.
func (a *API) catalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	c, err := a.sc.Catalog()
	if err != nil {
		a.writeError(w, r, err, nil)
		return nil, false
	}
	if notModified(w, r, c) {
		return nil, false
	}
	return c, true
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error, suggestions []catalog.Kind) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		a.sc.Logger().Error("api request failed",
			"path", r.URL.Path, logging.Status(http.StatusText(status)), logging.Err(err))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Suggestions: suggestions})
}

// StatusForError maps catalog and loader errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrUnknownKind), errors.Is(err, catalog.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrViewSuperseded):
		return http.StatusConflict
	case errors.Is(err, k8s.ErrDiscovery), errors.Is(err, k8s.ErrList):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func setRevision(w http.ResponseWriter, c *catalog.Catalog) {
	if rev := c.Revision(); rev != "" {
		w.Header().Set(RevisionHeader, rev)
	}
}

// notModified sets the revision headers and writes 304 when the client
// already holds the response for this revision.
func notModified(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) bool {
	rev := c.Revision()
	if rev == "" {
		return false
	}

	etag := `"` + rev + `"`
	w.Header().Set(RevisionHeader, rev)
	w.Header().Set("ETag", etag)

	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		if strings.TrimSpace(candidate) == etag {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNilLabels(labels map[string]string) map[string]string {
	if labels == nil {
		return map[string]string{}
	}
	return labels
}
