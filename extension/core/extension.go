// Package core provides the core extension for caskfind.
// It registers commands: init, config, serve, guide, db, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the catalogue management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the server's core tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server opens the catalogue itself.
// db: Manages gitignore entries without opening a catalogue.
// version: Displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "version"}
}
