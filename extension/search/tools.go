// tools.go implements the caskfind_search MCP tool.

package search

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/search"
)

// toolResult adds the remote failure, which the CLI only reports as a
// warning.
type toolResult struct {
	search.Result
	RemoteError string `json:"remote_error,omitempty"`
}

func searchTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("caskfind_search",
			mcp.WithDescription("Search casks by token and name. Terms are joined with spaces; a single '/pattern/' term is a case-insensitive regular expression. Returns exact, partial, name and remote matches."),
			mcp.WithArray("query", mcp.Required(), mcp.Description("Search terms"), mcp.WithStringItems()),
		),
		Handler: handleSearch,
	}
}

func handleSearch(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := extension.StringsArg(req, "query")
	if len(args) == 0 {
		return mcp.NewToolResultError("query is required"), nil
	}

	svc := extCtx.Service()
	res, err := search.Run(ctx, args, search.Deps{Catalog: svc, Remote: newRemote(extCtx.Config(), svc, nil)})

	log.Event("mcp:caskfind_search", "search").
		Author("mcp").
		Detail("term", strings.Join(args, " ")).
		Detail("partial", len(res.Partial)).
		Detail("names", len(res.Names)).
		Detail("remote", len(res.Remote)).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := toolResult{Result: res}
	if res.RemoteFailure != nil {
		out.RemoteError = res.RemoteFailure.Err.Error()
	}
	return extension.JSONResult(out)
}
