// Package remote looks for casks on the hosting side that are not in the
// local catalogue.
//
// A single code search is issued per query. Each hit is mapped to
// "user/repo/token" through the tap owning the hit's repository; hits from
// taps that are already installed are skipped, since their casks are part of
// the local catalogue. Remote failures never abort a search: they produce an
// empty tier and a warning. A hit whose repository is not a tap is skipped
// with a warning of its own.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/github"
	"github.com/jpl-au/caskfind/internal/log"
)

// Searcher runs code searches. *github.Client implements it.
type Searcher interface {
	SearchCode(ctx context.Context, q github.CodeQuery) ([]github.CodeResult, error)
}

// Options fixes the scope of every search.
type Options struct {
	User      string // Organisation owning the taps
	Path      string // Directory holding cask files
	Extension string // Cask file extension, without the dot
}

// Failure describes why the remote tier is empty.
type Failure struct {
	Kind github.Kind
	Err  error
}

// Result is the outcome of a remote search. Exactly one of Candidates
// (possibly empty) or Failure is meaningful.
type Result struct {
	Candidates []string
	Failure    *Failure
}

// Failed reports whether the search failed.
func (r Result) Failed() bool { return r.Failure != nil }

// Matcher maps remote hits to candidates.
type Matcher struct {
	searcher Searcher
	resolver catalog.Resolver
	oracle   catalog.InstalledOracle
	opts     Options
	logger   *slog.Logger
}

// New creates a Matcher.
func New(s Searcher, r catalog.Resolver, o catalog.InstalledOracle, opts Options) *Matcher {
	return &Matcher{searcher: s, resolver: r, oracle: o, opts: opts, logger: log.Console()}
}

// WithLogger returns a copy of m warning through l.
func (m *Matcher) WithLogger(l *slog.Logger) *Matcher {
	c := *m
	c.logger = l
	return &c
}

// Run searches for term, the display search term (the joined literal or the
// raw /regex/ text).
//
// Remote failures are returned in Result.Failure with a nil error. Hits
// naming repositories that cannot be resolved to a tap are skipped and
// logged. Errors from the installed-state oracle and context cancellation
// are returned.
func (m *Matcher) Run(ctx context.Context, term string) (Result, error) {
	hits, err := m.searcher.SearchCode(ctx, github.CodeQuery{
		User:      m.opts.User,
		Path:      m.opts.Path,
		Filename:  term,
		Extension: m.opts.Extension,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("remote search: %w", ctx.Err())
		}
		var ge *github.Error
		if !errors.As(err, &ge) {
			return Result{}, fmt.Errorf("remote search: %w", err)
		}
		return m.fail(ge.Kind, err), nil
	}

	candidates := make([]string, 0, len(hits))
	for _, h := range hits {
		tap, err := m.resolver.ResolveTap(h.Repository.FullName)
		if err != nil {
			if errors.Is(err, catalog.ErrInvalidTap) {
				m.skip(h, err)
				continue
			}
			return Result{}, fmt.Errorf("resolve tap %q: %w", h.Repository.FullName, err)
		}

		installed, err := m.oracle.TapInstalled(ctx, tap.Name())
		if err != nil {
			return Result{}, fmt.Errorf("tap %s installed: %w", tap, err)
		}
		if installed {
			continue
		}
		candidates = append(candidates, tap.Qualify(m.basename(h.Path)))
	}
	return Result{Candidates: candidates}, nil
}

func (m *Matcher) fail(kind github.Kind, err error) Result {
	m.logger.Warn("Error searching on GitHub", "kind", string(kind), "error", err)
	log.Event("remote:search", "remote").Detail("kind", string(kind)).Write(err)
	return Result{Failure: &Failure{Kind: kind, Err: err}}
}

func (m *Matcher) skip(h github.CodeResult, err error) {
	m.logger.Warn("Skipping GitHub search result", "repository", h.Repository.FullName, "path", h.Path, "error", err)
	log.Event("remote:search", "skip").Target(h.Repository.FullName).Detail("path", h.Path).Write(err)
}

// basename strips the directory and the configured extension: "Casks/foo.rb"
// becomes "foo". Other extensions are kept.
func (m *Matcher) basename(p string) string {
	b := path.Base(p)
	if m.opts.Extension == "" {
		return b
	}
	if s := strings.TrimSuffix(b, "."+m.opts.Extension); s != "" {
		return s
	}
	return b
}
