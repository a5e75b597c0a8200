// tools.go implements the catalogue MCP tools.

package catalog

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/importer"
	"github.com/jpl-au/caskfind/internal/log"
)

func infoTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("caskfind_info",
			mcp.WithDescription("Get a cask's tap, names, version, homepage and installed state. Accepts a bare token or user/repo/token."),
			mcp.WithString("cask", mcp.Required(), mcp.Description("Cask identifier")),
		),
		Handler: handleInfo,
	}
}

func installedTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("caskfind_installed",
			mcp.WithDescription("List installed cask identifiers, sorted."),
		),
		Handler: handleInstalled,
	}
}

func tapsTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("caskfind_taps",
			mcp.WithDescription("List taps with their cask counts."),
		),
		Handler: handleTaps,
	}
}

func tapTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("caskfind_tap",
			mcp.WithDescription("Import a tap from a directory of Casks/*.yaml manifests."),
			mcp.WithString("tap", mcp.Required(), mcp.Description("Tap name (user/repo)")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Tap directory")),
			mcp.WithBoolean("dry_run", mcp.Description("If true, report the tokens without importing")),
			mcp.WithBoolean("replace", mcp.Description("If true, replace a tap that is already registered")),
		),
		Handler: handleTap,
	}
}

func handleInfo(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("cask")
	if err != nil || id == "" {
		return mcp.NewToolResultError("cask is required"), nil
	}

	c, err := extCtx.Service().Resolve(ctx, id)
	log.Event("mcp:caskfind_info", "info").Author("mcp").Target(id).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(c.ToJSON())
}

func handleInstalled(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := extCtx.Service().Installed(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if ids == nil {
		ids = []string{}
	}
	return extension.JSONResult(ids)
}

func handleTaps(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc := extCtx.Service()
	taps, err := svc.Taps(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	counts, err := svc.TapCounts(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(tapsJSON(taps, counts))
}

func handleTap(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tap, err := req.RequireString("tap")
	if err != nil {
		return mcp.NewToolResultError("tap is required"), nil
	}
	src, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}
	dryRun := req.GetBool("dry_run", false)
	opts := importer.Options{DryRun: dryRun, Replace: req.GetBool("replace", false)}

	res, err := importer.Run(ctx, io.Discard, extCtx.Service(), tap, src, opts)

	log.Event("mcp:caskfind_tap", "tap").
		Author("mcp").
		Target(tap).
		Detail("src", src).
		Detail("dry_run", dryRun).
		Detail("imported", res.Imported).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(res)
}
