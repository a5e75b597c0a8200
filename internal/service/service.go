// Package service defines the shared interface for catalogue operations.
// Commands and extensions depend on this interface rather than on the
// concrete implementation in internal/cask.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/store"
)

// Service defines all catalogue operations.
//
// Identifiers follow the catalogue listing: casks of the default tap are
// bare ("firefox"), others are qualified ("caskroom/versions/firefox-beta").
//
//	svc, err := cask.New("", "")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	ids, err := svc.Identifiers(ctx)
type Service interface {
	// Identifiers and Entries enumerate the catalogue for search.
	catalog.Provider
	// IsInstalled and TapInstalled answer installed-state questions. Unknown
	// identifiers are reported as not installed.
	catalog.InstalledOracle
	// ResolveTap maps a repository full name to a tap.
	catalog.Resolver

	// Close checkpoints and releases the database. Always defer this after New.
	Close() error

	// DefaultTap returns the tap listed without qualification.
	DefaultTap() string

	// AddTap registers a tap imported from path.
	AddTap(ctx context.Context, name, path string) (*store.Tap, error)

	// RemoveTap removes a tap and its casks, returning how many were removed.
	RemoveTap(ctx context.Context, name string) (int64, error)

	// Taps returns registered taps ordered by name.
	Taps(ctx context.Context) ([]store.Tap, error)

	// TapCounts returns the number of casks per tap.
	TapCounts(ctx context.Context) (map[string]int64, error)

	// PutCask inserts or replaces a cask.
	PutCask(ctx context.Context, c store.Cask) error

	// Resolve returns the cask behind an identifier. A bare token outside the
	// default tap resolves when exactly one tap publishes it. Returns
	// store.ErrNotFound or ErrAmbiguous.
	Resolve(ctx context.Context, identifier string) (*store.Cask, error)

	// Identifier returns the display identifier of a cask.
	Identifier(c *store.Cask) string

	// Install and Uninstall record installed state and return the cask.
	Install(ctx context.Context, identifier string) (*store.Cask, error)
	Uninstall(ctx context.Context, identifier string) (*store.Cask, error)

	// Installed returns the identifiers of installed casks, sorted.
	Installed(ctx context.Context) ([]string, error)

	// Stats returns catalogue totals.
	Stats(ctx context.Context) (*store.Stats, error)

	// DB returns the underlying SQLite connection for extensions needing
	// custom tables. Do not close it; use Close.
	DB() *sql.DB

	// Tx runs fn in a transaction, committing when fn returns nil.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error
}
