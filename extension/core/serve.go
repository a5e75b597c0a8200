// serve.go implements "caskfind serve".
//
// Serve is storeless: it blocks handling MCP requests and opens (or
// creates, via caskfind_init) the catalogue itself.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Use --db to serve a specific catalogue:
  caskfind serve --db work

See 'caskfind guide mcp' for the tools it exposes.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(mcp.Options{
		DB:    cmd.DB(),
		Dir:   cmd.Dir(),
		Tools: extension.Tools(),
	})
}
