// Package catalog provides the commands that manage the catalogue: taps,
// installed state and cask details.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the catalog extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "catalog".
func (e *Extension) Name() string { return "catalog" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns tap, untap, taps, install, uninstall, list and info.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTapCmd(),
		e.newUntapCmd(),
		e.newTapsCmd(),
		e.newInstallCmd(),
		e.newUninstallCmd(),
		e.newListCmd(),
		e.newInfoCmd(),
	}
}

// MCPTools returns caskfind_info, caskfind_installed, caskfind_taps and
// caskfind_tap.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		infoTool(),
		installedTool(),
		tapsTool(),
		tapTool(),
	}
}
