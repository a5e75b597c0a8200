// init.go implements "caskfind init".
//
// Init creates the catalogue only; settings are managed with
// "caskfind config". --local keeps the catalogue out of git.

package core

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/cask"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/repo"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new catalogue",
		Long: `Creates a .caskfind/caskfind.db catalogue in the current directory.

Use --db to create additional catalogues:
  caskfind init --db work    # creates .caskfind/caskfind-work.db

Use --dir to create in a different directory:
  caskfind init --dir /path/to/project

Use --local to exclude from git:
  caskfind init --db scratch --local

Note: init does not create config. Use "caskfind config" for settings.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalogue as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which says nothing about a
	// catalogue created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the catalogue elsewhere"))
	}

	err := cask.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised caskfind catalogue in %s\n", loc)
	return nil
}
