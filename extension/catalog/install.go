// install.go implements "caskfind install", "caskfind uninstall" and
// "caskfind list".
//
// Installed state is a timestamp on the cask row; nothing is downloaded.

package catalog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/internal/format"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/store"
)

func (e *Extension) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <cask>...",
		Short: "Mark casks as installed",
		Long: `Record casks as installed. Installed casks carry a check mark in
search results.

  caskfind install firefox
  caskfind install caskroom/versions/firefox-beta`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return e.setInstalled(c.Context(), "install", args, e.svc.Install)
		},
	}
}

func (e *Extension) newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <cask>...",
		Short: "Clear installed state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return e.setInstalled(c.Context(), "uninstall", args, e.svc.Uninstall)
		},
	}
}

var past = map[string]string{"install": "Installed", "uninstall": "Uninstalled"}

func (e *Extension) setInstalled(ctx context.Context, action string, ids []string, fn func(context.Context, string) (*store.Cask, error)) error {
	done := make([]store.CaskJSON, 0, len(ids))
	for _, id := range ids {
		c, err := fn(ctx, id)

		log.Event("catalog:"+action, action).
			Author(cmd.Author()).
			Target(id).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("%s %s: %w", action, id, err))
		}
		if cmd.JSON() {
			done = append(done, c.ToJSON())
			continue
		}
		fmt.Fprintf(cmd.Out(), "%s: %s\n", past[action], e.svc.Identifier(c))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(done)
	}
	return nil
}

func (e *Extension) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed casks",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ids, err := e.svc.Installed(c.Context())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("list: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(ids)
			}
			_, width := cmd.Terminal()
			return format.Columns(cmd.Out(), ids, width)
		},
	}
}
