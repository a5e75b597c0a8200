// mcp.go defines types for MCP tool registration by extensions.
//
// Not every extension has MCP tools; some only provide CLI commands.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/caskfind/internal/store"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. extCtx gives access to the
// catalogue service and configuration.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// StringsArg extracts a string array argument. A single string is accepted
// as a one-element array; non-string elements are skipped. Returns nil when
// the argument is absent.
func StringsArg(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	switch v := args[name].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// JSONResult serialises v as indented JSON in a text result. Marshalling
// failures become error results.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
