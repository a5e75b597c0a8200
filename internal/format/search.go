package format

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/query"
	"github.com/jpl-au/caskfind/internal/search"
)

// Options configures interactive search output.
type Options struct {
	// Width is the terminal width in cells. Zero prints one entry per line.
	Width int
	// Installed marks installed casks. Nil disables highlighting.
	Installed catalog.InstalledOracle
	// Renderer styles headers and highlights. Nil detects the colour
	// profile from the writer.
	Renderer *lipgloss.Renderer
}

// Tier headers.
const (
	labelExact      = "Exact Match"
	labelPartial    = "Partial Matches"
	labelRegexp     = "Regexp Matches"
	labelNames      = "Name Matches"
	labelNameRegexp = "Name Regexp Matches"
	labelRemote     = "Remote Matches"
	noMatchTemplate = "No Cask found for \"%s\".\n"
)

// Flat prints every candidate on its own line, exact first, then partial,
// names and remote. No headers, no styling.
func Flat(w io.Writer, res search.Result) error {
	var all []string
	if res.Exact != "" {
		all = append(all, res.Exact)
	}
	all = append(all, res.Partial...)
	all = append(all, res.Names...)
	all = append(all, res.Remote...)
	for _, s := range all {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// SearchResults prints the tiers under "==>" headers, skipping empty tiers.
//
// When no local tier has an entry it prints a single "No Cask found" line,
// even if the remote tier is not empty. Installed exact, partial and remote
// entries are highlighted; names are printed as they are.
func SearchResults(ctx context.Context, w io.Writer, res search.Result, opts Options) error {
	if !res.HasLocal() {
		_, err := fmt.Fprintf(w, noMatchTemplate, res.Term)
		return err
	}

	st := newStyles(w, opts.Renderer)
	p := printer{ctx: ctx, w: w, st: st, opts: opts}
	regex := res.Mode == query.Regex

	if res.Exact != "" {
		p.header(labelExact)
		item, err := p.highlight(res.Exact)
		if err != nil {
			return err
		}
		p.line(item)
	}
	if len(res.Partial) > 0 {
		p.header(pick(regex, labelRegexp, labelPartial))
		p.highlighted(res.Partial)
	}
	if len(res.Names) > 0 {
		p.header(pick(regex, labelNameRegexp, labelNames))
		p.columns(res.Names)
	}
	if len(res.Remote) > 0 {
		p.header(labelRemote)
		p.highlighted(res.Remote)
	}
	return p.err
}

// printer holds the first error; later writes become no-ops.
type printer struct {
	ctx  context.Context
	w    io.Writer
	st   styles
	opts Options
	err  error
}

func (p *printer) header(label string) {
	p.line(p.st.header(label))
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) columns(items []string) {
	if p.err != nil {
		return
	}
	p.err = Columns(p.w, items, p.opts.Width)
}

func (p *printer) highlighted(items []string) {
	if p.err != nil {
		return
	}
	out := make([]string, len(items))
	for i, it := range items {
		s, err := p.highlight(it)
		if err != nil {
			p.err = err
			return
		}
		out[i] = s
	}
	p.columns(out)
}

func (p *printer) highlight(identifier string) (string, error) {
	if p.opts.Installed == nil {
		return identifier, nil
	}
	ok, err := p.opts.Installed.IsInstalled(p.ctx, identifier)
	if err != nil {
		return "", fmt.Errorf("installed %s: %w", identifier, err)
	}
	if !ok {
		return identifier, nil
	}
	return p.st.installed(identifier), nil
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
