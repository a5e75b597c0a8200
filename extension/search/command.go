// command.go implements "caskfind search".
//
// Separated from tools.go, which serves the same search over MCP. The command
// adds what only a terminal needs: the zero-argument listing, the spinner
// while the remote search runs, and flat output when stdout is piped.

package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/internal/format"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/progress"
	"github.com/jpl-au/caskfind/internal/search"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [term...]",
		Short: "Search all known casks",
		Long: `Search cask tokens and names.

  caskfind search                 # list every cask in columns
  caskfind search google chrome   # literal: case and punctuation ignored
  caskfind search '/^goo/'        # regular expression

Results are grouped into exact, partial, name and remote matches. Remote
matches come from GitHub code search when remote.enabled is true.
Piped output is one cask per line without headers.

See 'caskfind guide search'.`,
		RunE: e.runSearch,
	}
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	if len(args) == 0 {
		return e.runListing(ctx)
	}

	// Remote warnings share stderr with the spinner.
	spin := progress.NewSpinner("Searching")
	deps := search.Deps{Catalog: e.svc, Remote: newRemote(e.cfg, e.svc, log.ConsoleTo(spin.Writer()))}

	if deps.Remote != nil && !cmd.JSON() {
		spin.Start()
	}
	res, err := search.Run(ctx, args, deps)
	spin.Stop()

	term := strings.Join(args, " ")
	log.Event("search:search", "search").
		Author(cmd.Author()).
		Detail("term", term).
		Detail("mode", res.Mode.String()).
		Detail("exact", res.Exact != "").
		Detail("partial", len(res.Partial)).
		Detail("names", len(res.Names)).
		Detail("remote", len(res.Remote)).
		Detail("remote_failed", res.RemoteFailure != nil).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", term, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	tty, width := cmd.Terminal()
	if !tty {
		return format.Flat(cmd.Out(), res)
	}
	return format.SearchResults(ctx, cmd.Out(), res, format.Options{Width: width, Installed: e.svc})
}

// runListing prints the whole catalogue.
func (e *Extension) runListing(ctx context.Context) error {
	ids, err := search.List(ctx, e.svc)

	log.Event("search:search", "list").
		Author(cmd.Author()).
		Detail("count", len(ids)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(ids)
	}

	_, width := cmd.Terminal()
	return format.Columns(cmd.Out(), ids, width)
}
