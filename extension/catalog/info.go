// info.go implements "caskfind info".

package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/internal/format"
	"github.com/jpl-au/caskfind/internal/log"
)

func (e *Extension) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <cask>",
		Short: "Show cask details",
		Long: `Show a cask's tap, names, version, homepage and installed state.

  caskfind info firefox
  caskfind info caskroom/versions/firefox-beta

A bare token outside the default tap resolves when only one tap has it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cask, err := e.svc.Resolve(c.Context(), args[0])

			log.Event("catalog:info", "info").
				Author(cmd.Author()).
				Target(args[0]).
				Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("info %s: %w", args[0], err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(cask.ToJSON())
			}
			return format.Info(cmd.Out(), e.svc.Identifier(cask), cask)
		},
	}
}
