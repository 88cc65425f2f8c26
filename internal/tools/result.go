package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-explorer/internal/catalog"
)

// JSONResult returns v as indented JSON text.
func JSONResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ErrorResult turns a catalog or loader error into a tool error. Suggestions
// are appended for unknown kinds.
func ErrorResult(err error, suggestions []catalog.Kind) *mcp.CallToolResult {
	msg := err.Error()
	if errors.Is(err, catalog.ErrNotLoaded) {
		msg += "; call refresh_catalog to load it"
	}
	if len(suggestions) > 0 {
		names := make([]string, len(suggestions))
		for i, s := range suggestions {
			names[i] = string(s)
		}
		msg += fmt.Sprintf(" (did you mean: %s)", strings.Join(names, ", "))
	}
	return mcp.NewToolResultError(msg)
}
