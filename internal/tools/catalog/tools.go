// Package catalogtools exposes the resource catalog as MCP tools.
package catalogtools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-explorer/internal/server"
	"github.com/giantswarm/kube-explorer/internal/tools"
)

// RegisterCatalogTools registers all catalog tools with the MCP server.
func RegisterCatalogTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listKindsTool := mcp.NewTool("list_kinds",
		mcp.WithDescription("List the resource kinds of the loaded catalog with their record counts and categories"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(listKindsTool, tools.WrapWithAuditLogging("list_kinds", handleListKinds, sc))

	selectTool := mcp.NewTool("select_resources",
		mcp.WithDescription("Select resources like the dashboard does: every record of the kinds in a category, "+
			"or, when a query is given, the records of any kind whose name, namespace, status, labels or annotations contain it"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("category",
			mcp.Description("Category to list, e.g. Workloads, Network, \"Config & Storage\", RBAC, Cluster or Other"),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive search text. When set, the category is ignored"),
		),
		mcp.WithString("view",
			mcp.Description("Optional view name. A call is rejected as superseded when a newer call for the same view "+
				"started before it finished; calls without a view are independent"),
		),
	)
	s.AddTool(selectTool, tools.WrapWithAuditLogging("select_resources", handleSelectResources, sc))

	relateTool := mcp.NewTool("relate_resources",
		mcp.WithDescription("Find resources of other kinds that share at least one label key and value with a resource or an explicit label set"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Kind of the focal resource as a plural name, e.g. pods or deployments"),
		),
		mcp.WithString("name",
			mcp.Description("Name of the focal resource. Required unless labels are given"),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the focal resource (optional, the first match is used when empty)"),
		),
		mcp.WithObject("labels",
			mcp.Description("Explicit label set to relate instead of the labels of a named resource"),
		),
	)
	s.AddTool(relateTool, tools.WrapWithAuditLogging("relate_resources", handleRelateResources, sc))

	getTool := mcp.NewTool("get_resource",
		mcp.WithDescription("Get the full object behind a catalog record. Managed fields are removed and secret values are masked"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Kind as a plural name, e.g. pods"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the resource"),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the resource (optional, the first match is used when empty)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum("json", "yaml"),
		),
	)
	s.AddTool(getTool, tools.WrapWithAuditLogging("get_resource", handleGetResource, sc))

	refreshTool := mcp.NewTool("refresh_catalog",
		mcp.WithDescription("Reload the catalog from the cluster and publish it"),
	)
	s.AddTool(refreshTool, tools.WrapWithAuditLogging("refresh_catalog", handleRefreshCatalog, sc))

	return nil
}
