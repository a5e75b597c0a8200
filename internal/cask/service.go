// Package cask implements service.Service over the SQLite store. It maps
// stored (tap, token) pairs to the identifiers users type and see: tokens in
// the default tap are bare, others are qualified as "user/repo/token". It
// also answers the installed-state questions the search path asks.

package cask

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/log"
	"github.com/jpl-au/caskfind/internal/repo"
	"github.com/jpl-au/caskfind/internal/service"
	"github.com/jpl-au/caskfind/internal/store"
)

// ErrAmbiguous is returned when a bare token is published by several taps
// and none of them is the default tap.
var ErrAmbiguous = errors.New("ambiguous cask token")

// Service provides catalogue operations backed by a Store.
type Service struct {
	store      *store.SQLiteStore
	dbPath     string
	defaultTap string
}

var _ service.Service = (*Service)(nil)

// New opens the named catalogue (empty for the default). With dir set it
// opens dir/.caskfind directly; otherwise it walks up the directory tree.
// Returns repo.ErrNotInitialised if none is found.
func New(db, dir string) (*Service, error) {
	dbPath, err := locate(db, dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(dbPath, cfg)
}

func locate(db, dir string) (string, error) {
	if dir == "" {
		return repo.Discover(db)
	}
	p := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("%w: %s", repo.ErrNotInitialised, p)
	}
	return p, nil
}

// Open opens the catalogue at dbPath.
func Open(dbPath string, cfg *config.Config) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	// Catalogues created by older builds may lack newer tables.
	if err := s.Init(); err != nil {
		s.Close()
		return nil, err
	}
	return &Service{store: s, dbPath: dbPath, defaultTap: cfg.DefaultTap()}, nil
}

// Init creates a catalogue. See repo.Init.
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the database.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// DBPath returns the catalogue file path.
func (s *Service) DBPath() string { return s.dbPath }

// DefaultTap returns the tap listed without qualification.
func (s *Service) DefaultTap() string { return s.defaultTap }

// Identifier returns the display identifier of c.
func (s *Service) Identifier(c *store.Cask) string {
	return catalog.Display(catalog.Token{Tap: c.Tap, Token: c.Token}, s.defaultTap)
}

// Identifiers returns every display identifier, sorted and deduplicated.
func (s *Service) Identifiers(ctx context.Context) ([]string, error) {
	casks, err := s.store.Casks(ctx)
	if err != nil {
		return nil, err
	}
	tokens := make([]catalog.Token, len(casks))
	for i, c := range casks {
		tokens[i] = catalog.Token{Tap: c.Tap, Token: c.Token}
	}
	return catalog.NiceListing(tokens, s.defaultTap), nil
}

// Entries returns every cask with its declared names.
func (s *Service) Entries(ctx context.Context) ([]catalog.Entry, error) {
	casks, err := s.store.Casks(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]catalog.Entry, len(casks))
	for i := range casks {
		entries[i] = catalog.Entry{Identifier: s.Identifier(&casks[i]), Names: casks[i].Names}
	}
	return entries, nil
}

// IsInstalled reports whether the cask behind identifier is installed.
func (s *Service) IsInstalled(ctx context.Context, identifier string) (bool, error) {
	c, err := s.Resolve(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrAmbiguous) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.Installed(), nil
}

// TapInstalled reports whether a tap is registered.
func (s *Service) TapInstalled(ctx context.Context, tap string) (bool, error) {
	return s.store.TapExists(ctx, tap)
}

// ResolveTap parses a repository full name such as "caskroom/homebrew-versions".
func (s *Service) ResolveTap(fullName string) (catalog.Tap, error) {
	return catalog.ParseTap(fullName)
}

// AddTap registers a tap.
func (s *Service) AddTap(ctx context.Context, name, path string) (*store.Tap, error) {
	t, err := catalog.ParseTap(name)
	if err != nil {
		return nil, err
	}
	tap := store.Tap{Name: t.Name(), User: t.User, Repo: t.Repo, Path: path}
	if err := s.store.AddTap(ctx, tap); err != nil {
		return nil, err
	}
	return &tap, nil
}

// RemoveTap removes a tap and its casks.
func (s *Service) RemoveTap(ctx context.Context, name string) (int64, error) {
	return s.store.RemoveTap(ctx, name)
}

// Taps returns registered taps.
func (s *Service) Taps(ctx context.Context) ([]store.Tap, error) {
	return s.store.Taps(ctx)
}

// TapCounts returns the number of casks per tap.
func (s *Service) TapCounts(ctx context.Context) (map[string]int64, error) {
	return s.store.TapCounts(ctx)
}

// PutCask inserts or replaces a cask.
func (s *Service) PutCask(ctx context.Context, c store.Cask) error {
	return s.store.PutCask(ctx, c)
}

// Resolve returns the cask behind an identifier.
func (s *Service) Resolve(ctx context.Context, identifier string) (*store.Cask, error) {
	tok := catalog.SplitIdentifier(identifier, s.defaultTap)
	c, err := s.store.Cask(ctx, tok.Tap, tok.Token)
	if err == nil || !errors.Is(err, store.ErrNotFound) || tok.Tap != s.defaultTap {
		return c, err
	}
	if tok.Tap+"/"+tok.Token == identifier {
		// Explicitly qualified with the default tap.
		return nil, err
	}

	// A bare token outside the default tap.
	casks, lerr := s.store.Casks(ctx)
	if lerr != nil {
		return nil, lerr
	}
	var found []store.Cask
	for _, c := range casks {
		if c.Token == tok.Token {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return nil, err
	case 1:
		return &found[0], nil
	default:
		taps := make([]string, len(found))
		for i, c := range found {
			taps[i] = c.Tap
		}
		return nil, fmt.Errorf("%w: %s is in %v", ErrAmbiguous, tok.Token, taps)
	}
}

// Install records c as installed.
func (s *Service) Install(ctx context.Context, identifier string) (*store.Cask, error) {
	return s.setInstalled(ctx, identifier, true)
}

// Uninstall clears installed state.
func (s *Service) Uninstall(ctx context.Context, identifier string) (*store.Cask, error) {
	return s.setInstalled(ctx, identifier, false)
}

func (s *Service) setInstalled(ctx context.Context, identifier string, installed bool) (*store.Cask, error) {
	c, err := s.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetInstalled(ctx, c.Tap, c.Token, installed); err != nil {
		return nil, err
	}
	return s.store.Cask(ctx, c.Tap, c.Token)
}

// Installed returns the identifiers of installed casks, sorted.
func (s *Service) Installed(ctx context.Context) ([]string, error) {
	casks, err := s.store.Installed(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(casks))
	for i := range casks {
		ids[i] = s.Identifier(&casks[i])
	}
	slices.Sort(ids)
	return ids, nil
}

// Stats returns catalogue totals.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// DB returns the underlying connection.
func (s *Service) DB() *sql.DB { return s.store.DB() }

// Tx runs fn in a transaction.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.store.Tx(ctx, fn)
}

// Checkpoint flushes the WAL.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
