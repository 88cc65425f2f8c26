// Package cmd provides the command-line interface for kube-explorer.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the server (default behavior when no subcommand is provided)
//   - select: Prints the records of a category or the matches of a search
//   - relate: Prints the records related to a resource by labels
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	kube-explorer [flags]                    # Starts the server (default)
//	kube-explorer serve [flags]              # Explicitly starts the server
//	kube-explorer select --category Workloads
//	kube-explorer relate --kind pods --name web-1 --namespace default
//	kube-explorer version                    # Shows version information
//	kube-explorer self-update                # Updates to latest release
//
// The serve command supports two transports:
//   - stdio: Standard input/output (default), MCP tools only
//   - streamable-http: MCP over HTTP plus the dashboard API under /api and
//     the health probes
//
// Transport Configuration Examples:
//
//	kube-explorer serve --transport stdio
//	kube-explorer serve --transport streamable-http --http-addr :8080 --http-endpoint /mcp
//
// Cluster access and catalog loading are configured with the same flags on
// serve, select and relate (--kubeconfig, --context, --in-cluster, --kinds,
// --include-cluster-scoped, --list-timeout, --list-concurrency). Flags that
// are not set explicitly fall back to environment variables such as
// KUBECONFIG, KUBE_CONTEXT, CATALOG_LIST_TIMEOUT and CATALOG_CONCURRENCY.
package cmd
