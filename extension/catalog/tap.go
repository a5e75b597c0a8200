// tap.go implements the "caskfind tap", "untap" and "taps" commands.
//
// Separated from install.go: these commands change which casks exist, while
// install and uninstall only change installed state. Imports go through
// internal/importer so the CLI and the caskfind_tap tool share validation
// and rollback.

package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/format"
	"github.com/jpl-au/caskfind/internal/importer"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/store"
)

func (e *Extension) newTapCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tap <user/repo> <dir>",
		Short: "Import a tap's cask manifests",
		Long: `Register a tap and import every manifest under <dir>/Casks.

  caskfind tap caskroom/cask ./homebrew-cask
  caskfind tap caskroom/versions ./versions --dry-run

Each manifest is YAML with token, name, version, homepage and desc.
The token defaults to the file name. Use --force to replace a tap that is
already registered.

See 'caskfind guide tap'.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runTap,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	c.Flags().Bool(extension.FlagIncludeHidden, false, "Include hidden manifests")
	return c
}

func (e *Extension) runTap(c *cobra.Command, args []string) error {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	hidden, _ := c.Flags().GetBool(extension.FlagIncludeHidden)
	tap, src := args[0], args[1]

	w := cmd.Out()
	if cmd.JSON() {
		// Dry-run lines would break the JSON document.
		w = c.ErrOrStderr()
	}
	res, err := importer.Run(c.Context(), w, e.svc, tap, src, importer.Options{
		DryRun:  dryRun,
		Hidden:  hidden,
		Replace: cmd.Force(),
	})

	log.Event("catalog:tap", "tap").
		Author(cmd.Author()).
		Target(tap).
		Detail("src", src).
		Detail("dry_run", dryRun).
		Detail("imported", res.Imported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tap %s: %w", tap, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	if !dryRun {
		fmt.Fprintf(cmd.Out(), "Tapped %s (%d casks)\n", res.Tap, res.Imported)
	}
	return nil
}

func (e *Extension) newUntapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untap <user/repo>",
		Short: "Remove a tap and its casks",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			n, err := e.svc.RemoveTap(c.Context(), args[0])

			log.Event("catalog:untap", "untap").
				Author(cmd.Author()).
				Target(args[0]).
				Detail("removed", n).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("untap %s: %w", args[0], err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]any{"tap": args[0], "removed": n})
			}
			fmt.Fprintf(cmd.Out(), "Untapped %s (%d casks)\n", args[0], n)
			return nil
		},
	}
}

func (e *Extension) newTapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taps",
		Short: "List taps",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			taps, counts, err := e.taps(c)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("taps: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(tapsJSON(taps, counts))
			}
			return format.Taps(cmd.Out(), taps, counts)
		},
	}
}

func (e *Extension) taps(c *cobra.Command) ([]store.Tap, map[string]int64, error) {
	ctx := c.Context()
	taps, err := e.svc.Taps(ctx)
	if err != nil {
		return nil, nil, err
	}
	counts, err := e.svc.TapCounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	return taps, counts, nil
}

func tapsJSON(taps []store.Tap, counts map[string]int64) []store.TapJSON {
	out := make([]store.TapJSON, len(taps))
	for i := range taps {
		out[i] = taps[i].ToJSON(counts[taps[i].Name])
	}
	return out
}
