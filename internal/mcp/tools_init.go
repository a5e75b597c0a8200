// tools_init.go implements the MCP tool for creating a catalogue. It works
// without an existing catalogue.

package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/caskfind/internal/cask"
	"github.com/jpl-au/caskfind/internal/log"
)

// initCatalogue handles caskfind_init tool calls.
func (h *handlers) initCatalogue(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, res := h.context(); res == nil {
		return mcp.NewToolResultError("catalogue already initialised"), nil
	}

	local := getBool(req, "local", false)

	err := cask.Init(false, h.db, local, h.dir)

	log.Event("mcp:caskfind_init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := cask.New(h.db, h.dir)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalogue: " + err.Error()), nil
	}
	if err := h.attach(svc); err != nil {
		svc.Close()
		return mcp.NewToolResultError(err.Error()), nil
	}

	slog.Info("catalogue initialised", "local", local)

	if local {
		return mcp.NewToolResultText("catalogue initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("catalogue initialised"), nil
}
