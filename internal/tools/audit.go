// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-explorer/internal/instrumentation"
	"github.com/giantswarm/kube-explorer/internal/logging"
	"github.com/giantswarm/kube-explorer/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithAuditLogging wraps a tool handler with a server span and one audit
// log line per invocation. The line carries the tool name, the kind, record
// and view arguments, the outcome and the trace id for correlation.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		ctx, span := instrumentation.StartToolSpan(ctx, toolName, spanAttributes(args).Build()...)
		defer span.End()

		start := time.Now()
		result, err := handler(ctx, request, sc)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		var failure error
		switch {
		case err != nil:
			failure = err
		case result != nil && result.IsError:
			failure = errors.New(resultText(result))
		}
		if failure != nil {
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, failure)
		} else {
			instrumentation.SetSpanSuccess(span)
		}

		logArgs := []any{
			logging.KeyTool, toolName,
			logging.Status(status),
			logging.Duration(duration),
		}
		logArgs = append(logArgs, auditAttributes(args)...)
		if traceID := instrumentation.GetTraceID(ctx); traceID != "" {
			logArgs = append(logArgs, "trace_id", traceID)
		}
		if failure != nil {
			logArgs = append(logArgs, logging.SanitizedErr(failure))
			sc.Logger().Warn("tool invocation failed", logArgs...)
		} else {
			sc.Logger().Info("tool invocation", logArgs...)
		}

		return result, err
	}
}

func spanAttributes(args map[string]interface{}) *instrumentation.SpanAttributeBuilder {
	b := instrumentation.NewSpanAttributeBuilder().
		WithNamespace(StringArg(args, "namespace")).
		WithResource(StringArg(args, "kind"), StringArg(args, "name"))
	if category, query := StringArg(args, "category"), StringArg(args, "query"); category != "" || query != "" {
		b.WithView(category, query)
	}
	return b
}

// auditAttributes extracts the kind, record and view arguments of a tool call.
func auditAttributes(args map[string]interface{}) []any {
	var attrs []any
	if kind := StringArg(args, "kind"); kind != "" {
		attrs = append(attrs, logging.Kind(kind))
	}
	if name := StringArg(args, "name"); name != "" {
		attrs = append(attrs, logging.Name(name))
	}
	if ns := StringArg(args, "namespace"); ns != "" {
		attrs = append(attrs, logging.Namespace(ns))
	}
	if category := StringArg(args, "category"); category != "" {
		attrs = append(attrs, logging.Category(category))
	}
	if query := StringArg(args, "query"); query != "" {
		attrs = append(attrs, logging.Query(query))
	}
	return attrs
}

func resultText(result *mcp.CallToolResult) string {
	if len(result.Content) > 0 {
		if text, ok := result.Content[0].(mcp.TextContent); ok {
			return text.Text
		}
	}
	return "tool returned an error"
}
