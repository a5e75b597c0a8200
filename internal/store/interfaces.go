// interfaces.go defines the storage abstraction for the catalogue.
//
// Separated from the SQLite implementation. The interfaces follow the
// catalogue's split: TapReader and TapWriter for registration, CaskReader
// and CaskWriter for manifests and installed state, Maintainer for the
// checkpoint. Store composes them and SQLiteStore implements Store.
//
// Design: casks belong to exactly one tap. Removing a tap removes its casks
// and their names in the same transaction, so no cask outlives its tap.

package store

import (
	"context"
	"database/sql"
)

// TapReader lists registered taps.
type TapReader interface {
	// Taps returns every tap ordered by name.
	Taps(ctx context.Context) ([]Tap, error)

	// TapExists reports whether a tap is registered.
	TapExists(ctx context.Context, name string) (bool, error)
}

// TapWriter registers and removes taps.
type TapWriter interface {
	// AddTap registers a tap. Returns ErrAlreadyExists if it is registered.
	AddTap(ctx context.Context, t Tap) error

	// RemoveTap removes a tap together with its casks and their names.
	// Returns the number of casks removed, or ErrTapNotFound.
	RemoveTap(ctx context.Context, name string) (int64, error)
}

// CaskReader reads casks.
type CaskReader interface {
	// Casks returns every cask with its names, ordered by tap then token.
	Casks(ctx context.Context) ([]Cask, error)

	// Cask returns one cask. Returns ErrNotFound if it does not exist.
	Cask(ctx context.Context, tap, token string) (*Cask, error)

	// Installed returns installed casks ordered by tap then token.
	Installed(ctx context.Context) ([]Cask, error)

	// Stats returns catalogue totals.
	Stats(ctx context.Context) (*Stats, error)

	// TapCounts returns the number of casks per tap.
	TapCounts(ctx context.Context) (map[string]int64, error)
}

// CaskWriter modifies casks.
type CaskWriter interface {
	// PutCask inserts or replaces a cask and its names. Installed state is
	// preserved. Returns ErrTapNotFound if the tap is not registered.
	PutCask(ctx context.Context, c Cask) error

	// SetInstalled records or clears installed state. Returns ErrNotFound if
	// the cask does not exist.
	SetInstalled(ctx context.Context, tap, token string, installed bool) error
}

// Maintainer defines connection lifecycle operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error
}

// Store is the catalogue persistence interface.
type Store interface {
	TapReader
	TapWriter
	CaskReader
	CaskWriter
	Maintainer
}
