// Package extension provides the plugin architecture for caskfind. Extensions
// group related functionality (commands, MCP tools) and register at init
// time, so features are added without touching the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for caskfind extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the catalogue
// is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a catalogue. Commands returned by NoStoreCommands() do not
// trigger catalogue initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a catalogue exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Utility commands that never touch the catalogue (version)
type Storeless interface {
	NoStoreCommands() []string
}

// Tools collects the MCP tools of every registered extension in
// registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, ext := range All() {
		tools = append(tools, ext.MCPTools()...)
	}
	return tools
}
