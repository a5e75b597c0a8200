// Package format provides output formatting for CLI display.
//
// Keeps presentation out of the commands: column layout, tiered search
// output with headers and installed highlighting, and the tap and cask
// listings.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpl-au/caskfind/internal/store"
)

// Taps prints registered taps with their cask counts, aligned on the tap
// name.
func Taps(w io.Writer, taps []store.Tap, counts map[string]int64) error {
	if len(taps) == 0 {
		return nil
	}

	maxName := 3 // minimum "TAP"
	for _, t := range taps {
		maxName = max(maxName, len(t.Name))
	}

	if _, err := fmt.Fprintf(w, "%-*s  %5s  %-10s  %s\n", maxName, "TAP", "CASKS", "ADDED", "PATH"); err != nil {
		return err
	}
	for _, t := range taps {
		added := time.Unix(t.AddedAt, 0).Format("2006-01-02")
		path := t.Path
		if path == "" {
			path = "-"
		}
		if _, err := fmt.Fprintf(w, "%-*s  %5d  %s  %s\n", maxName, t.Name, counts[t.Name], added, path); err != nil {
			return err
		}
	}
	return nil
}

// Info prints one cask's details under its display identifier.
func Info(w io.Writer, identifier string, c *store.Cask) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", identifier)
	if c.Version != "" {
		fmt.Fprintf(&b, ": %s", c.Version)
	}
	b.WriteByte('\n')
	if len(c.Names) > 0 {
		fmt.Fprintf(&b, "Names:     %s\n", strings.Join(c.Names, ", "))
	}
	if c.Desc != "" {
		fmt.Fprintf(&b, "Desc:      %s\n", c.Desc)
	}
	if c.Homepage != "" {
		fmt.Fprintf(&b, "Homepage:  %s\n", c.Homepage)
	}
	fmt.Fprintf(&b, "Tap:       %s\n", c.Tap)
	if c.InstalledAt != nil {
		fmt.Fprintf(&b, "Installed: %s %s\n", time.Unix(*c.InstalledAt, 0).Format("2006-01-02 15:04"), Checkmark)
	} else {
		b.WriteString("Not installed\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
