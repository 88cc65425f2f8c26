package catalogtools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-explorer/internal/catalog"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/server"
	"github.com/giantswarm/kube-explorer/internal/tools"
	"github.com/giantswarm/kube-explorer/internal/tools/output"
)

const maxSuggestions = 3

// handleListKinds describes every kind of the published catalog.
func handleListKinds(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	c, err := sc.Catalog()
	if err != nil {
		return tools.ErrorResult(err, nil), nil
	}
	return tools.JSONResult(server.NewKindsResponse(c, sc.Categories()))
}

// handleSelectResources computes a view selection. Only calls naming the
// same view in one MCP session supersede each other; calls without a view
// are never superseded.
func handleSelectResources(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	category := tools.StringArg(args, "category")
	query := tools.StringArg(args, "query")

	sel, c, err := sc.Select(ctx, viewSession(ctx, tools.StringArg(args, "view")), category, query)
	if err != nil {
		return tools.ErrorResult(err, nil), nil
	}
	return tools.JSONResult(server.NewSelectResponse(c, sel))
}

// handleRelateResources relates a named record, or an explicit label set
// when labels are given.
func handleRelateResources(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	kindArg, err := tools.RequiredStringArg(args, "kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind := catalog.Kind(kindArg)

	labels, err := tools.StringMapArg(args, "labels")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := sc.Catalog()
	if err != nil {
		return tools.ErrorResult(err, nil), nil
	}

	if labels != nil {
		return tools.JSONResult(server.RelateResponse{
			Revision:  c.Revision(),
			Focal:     server.FocalRecord{Kind: kind, Labels: labels},
			Relations: catalog.Relate(c, kind, labels),
		})
	}

	name, err := tools.RequiredStringArg(args, "name")
	if err != nil {
		return mcp.NewToolResultError("name is required unless labels are given"), nil
	}

	focal, relations, err := catalog.RelateTo(c, kind, tools.StringArg(args, "namespace"), name)
	if err != nil {
		return tools.ErrorResult(err, suggestions(c, kind, err)), nil
	}

	focalLabels := focal.Labels
	if focalLabels == nil {
		focalLabels = map[string]string{}
	}
	return tools.JSONResult(server.RelateResponse{
		Revision: c.Revision(),
		Focal: server.FocalRecord{
			Kind:      kind,
			Name:      focal.Name,
			Namespace: focal.Namespace,
			Labels:    focalLabels,
		},
		Relations: relations,
	})
}

// handleGetResource renders the raw object behind a record.
func handleGetResource(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	kindArg, err := tools.RequiredStringArg(args, "kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind := catalog.Kind(kindArg)

	name, err := tools.RequiredStringArg(args, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := output.ParseFormat(tools.StringArg(args, "format"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	obj, err := sc.Loader().Object(kind, tools.StringArg(args, "namespace"), name)
	if err != nil {
		c, _ := sc.Catalog()
		return tools.ErrorResult(err, suggestions(c, kind, err)), nil
	}

	body, err := output.RenderObject(obj, format, sc.Config().Output)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render resource: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// handleRefreshCatalog reloads the catalog from the cluster.
func handleRefreshCatalog(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	c, err := sc.Loader().Refresh(ctx)
	if err != nil {
		return tools.ErrorResult(err, nil), nil
	}

	sc.Logger().Info("catalog refreshed by tool call",
		logging.Revision(c.Revision()), logging.Count(c.Total()))
	return tools.JSONResult(server.NewRefreshResponse(c))
}

// suggestions proposes loaded kinds for unknown-kind errors.
func suggestions(c *catalog.Catalog, kind catalog.Kind, err error) []catalog.Kind {
	if c == nil || !errors.Is(err, catalog.ErrUnknownKind) {
		return nil
	}
	return catalog.Suggest(c, string(kind), maxSuggestions)
}

// sessionID returns the id of the MCP client session behind ctx, or "" for
// calls outside a session.
func sessionID(ctx context.Context) string {
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		return session.SessionID()
	}
	return ""
}

// viewSession scopes view to the MCP session of ctx. An empty view is
// anonymous.
func viewSession(ctx context.Context, view string) string {
	if view == "" {
		return ""
	}
	if id := sessionID(ctx); id != "" {
		return id + "/" + view
	}
	return view
}
