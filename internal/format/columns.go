package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// gap separates columns.
const gap = 2

// Columns prints items in column-major order fitting width terminal cells.
// Items may carry ANSI styling. It falls back to one item per line when
// width is not positive or fewer than two columns fit.
func Columns(w io.Writer, items []string, width int) error {
	if len(items) == 0 {
		return nil
	}

	widths := make([]int, len(items))
	longest := 0
	for i, it := range items {
		widths[i] = lipgloss.Width(it)
		longest = max(longest, widths[i])
	}

	cols := 0
	if width > 0 {
		cols = (width + gap) / (longest + gap)
	}
	if cols < 2 {
		for _, it := range items {
			if _, err := fmt.Fprintln(w, it); err != nil {
				return err
			}
		}
		return nil
	}

	rows := (len(items) + cols - 1) / cols
	cols = (len(items) + rows - 1) / rows // no empty trailing columns
	colWidth := (width+gap)/cols - gap

	var b strings.Builder
	for r := range rows {
		for c := range cols {
			i := c*rows + r
			if i >= len(items) {
				break
			}
			if c > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			b.WriteString(items[i])
			// No trailing padding on the last item of a row.
			if next := (c+1)*rows + r; next < len(items) && c+1 < cols {
				b.WriteString(strings.Repeat(" ", max(colWidth-widths[i], 0)))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
