package format

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Checkmark follows installed entries.
const Checkmark = "✔"

type styles struct {
	arrow lipgloss.Style
	title lipgloss.Style
	mark  lipgloss.Style
	bold  lipgloss.Style
}

func newStyles(w io.Writer, r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.NewRenderer(w)
	}
	return styles{
		arrow: r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		title: r.NewStyle().Bold(true),
		mark:  r.NewStyle().Foreground(lipgloss.Color("2")),
		bold:  r.NewStyle().Bold(true),
	}
}

func (s styles) header(label string) string {
	return s.arrow.Render("==>") + " " + s.title.Render(label)
}

// installed renders "token ✔". On a colourless writer only the mark shows.
func (s styles) installed(identifier string) string {
	return s.bold.Render(identifier) + " " + s.mark.Render(Checkmark)
}
