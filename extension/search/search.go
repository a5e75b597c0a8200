// Package search provides the search command and the caskfind_search MCP
// tool.
package search

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newSearchCmd()}
}

// MCPTools returns caskfind_search.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{searchTool()}
}
