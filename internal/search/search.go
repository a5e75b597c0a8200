// Package search resolves a query against the catalogue and the remote code
// search, and classifies the candidates into display tiers.
package search

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/match"
	"github.com/jpl-au/caskfind/internal/query"
	"github.com/jpl-au/caskfind/internal/remote"
)

// RemoteMatcher finds candidates outside the local catalogue.
// *remote.Matcher implements it.
type RemoteMatcher interface {
	Run(ctx context.Context, term string) (remote.Result, error)
}

// Deps are the collaborators of a search. A nil Remote disables the remote
// tier.
type Deps struct {
	Catalog catalog.Provider
	Remote  RemoteMatcher
}

// Result holds the classified candidates. Tiers keep their own order and are
// not deduplicated against each other, except that Exact never appears in
// Partial.
type Result struct {
	Exact   string     `json:"exact"`
	Partial []string   `json:"partial"`
	Names   []string   `json:"names"`
	Remote  []string   `json:"remote"`
	Term    string     `json:"term"`
	Mode    query.Mode `json:"mode"`

	// NameCasks maps each entry of Names to the casks declaring it.
	NameCasks map[string][]string `json:"name_casks,omitempty"`

	// RemoteFailure is set when the remote tier is empty because the
	// remote search failed.
	RemoteFailure *remote.Failure `json:"-"`
}

// HasLocal reports whether any local tier has an entry. The remote tier is
// not considered.
func (r Result) HasLocal() bool {
	return r.Exact != "" || len(r.Partial) > 0 || len(r.Names) > 0
}

// Run searches for args.
//
// An invalid /regex/ fails before any lookup. The local match and the
// remote search run concurrently; a failure to enumerate the catalogue
// wraps catalog.ErrUnavailable and aborts the search.
func Run(ctx context.Context, args []string, d Deps) (Result, error) {
	q := query.Parse(args)
	if _, err := q.Compile(); err != nil {
		return Result{}, err
	}

	var (
		set    match.Set
		owners map[string][]string
		rem    remote.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx, err := Index(gctx, d.Catalog)
		if err != nil {
			return err
		}
		set, err = match.Run(q, idx)
		if err != nil {
			return err
		}
		owners = nameCasks(idx, set.Names)
		return nil
	})
	if d.Remote != nil {
		g.Go(func() error {
			var err error
			rem, err = d.Remote.Run(gctx, q.Term)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Exact:         set.Exact,
		Partial:       nonNil(set.Partial),
		Names:         nonNil(set.Names),
		Remote:        nonNil(rem.Candidates),
		Term:          q.Term,
		Mode:          q.Mode,
		NameCasks:     owners,
		RemoteFailure: rem.Failure,
	}, nil
}

// Index snapshots the catalogue into a search index.
func Index(ctx context.Context, p catalog.Provider) (*catalog.Index, error) {
	ids, err := p.Identifiers(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	entries, err := p.Entries(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return catalog.Build(ids, entries), nil
}

// List returns every identifier in the catalogue, sorted and deduplicated.
func List(ctx context.Context, p catalog.Provider) ([]string, error) {
	ids, err := p.Identifiers(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func nameCasks(idx *catalog.Index, names []string) map[string][]string {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string][]string, len(names))
	for _, n := range names {
		out[n] = idx.Aliases(n)
	}
	return out
}

func unavailable(err error) error {
	if errors.Is(err, catalog.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
