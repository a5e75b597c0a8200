// db.go implements "caskfind db".
//
// db edits .gitignore entries for catalogue files and never opens them.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/caskfind/cmd"
	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/repo"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage catalogues",
		Long: `List catalogues or change their local/shared status.

  caskfind db                  # list all catalogues
  caskfind db --local          # mark default catalogue as local
  caskfind db work --local     # mark caskfind-work.db as local
  caskfind db work --share     # mark as shared
  caskfind db --dir /path      # list catalogues in another project

Local catalogues are gitignored. Shared catalogues are committed.
Without a name, --local and --share apply to the default catalogue.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalogue as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark catalogue as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo functions take the .caskfind directory, not the project root.
	// Empty means discover it from the working directory.
	dir := cmd.Dir()
	repoDir := ""
	if dir != "" {
		repoDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(repoDir)

		log.Event("core:db", "list").
			Author(cmd.Author()).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	if local {
		err := repo.IgnoreDB(name, repoDir)

		log.Event("core:db", "ignore").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		return printStatus(repo.DBFileName(name), "local", "%s marked as local\n")
	}

	if share {
		err := repo.UnignoreDB(name, repoDir)

		log.Event("core:db", "unignore").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		return printStatus(repo.DBFileName(name), "shared", "%s marked as shared\n")
	}

	ignored, err := repo.IsIgnored(name, repoDir)

	log.Event("core:db", "status").
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	status := "shared"
	if ignored {
		status = "local"
	}
	return printStatus(repo.DBFileName(name), status, "%s: "+status+"\n")
}

func printStatus(file, status, format string) error {
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"file": file, "status": status})
	}
	fmt.Fprintf(cmd.Out(), format, file)
	return nil
}

// listDBs prints each catalogue as "shared" (committed) or "local" (gitignored).
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return err
	}

	if cmd.JSON() {
		out := make([]map[string]any, 0, len(dbs))
		for _, db := range dbs {
			out = append(out, map[string]any{"name": db.Name, "file": db.File, "local": db.Local})
		}
		return cmd.PrintJSON(out)
	}

	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No catalogues found")
		return nil
	}

	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}
