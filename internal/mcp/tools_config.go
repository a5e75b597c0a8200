// tools_config.go implements the read-only MCP config tool. Settings are
// changed with "caskfind config", not by clients.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/log"
)

// configGet handles caskfind_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:caskfind_config_get", "config").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:caskfind_config_get", "config").Author("mcp").Write(nil)
		return extension.JSONResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:caskfind_config_get", "config").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(map[string]string{key: v})
}
