// sqlite_ops.go provides SQLite connection management and low-level helpers.
//
// Separated from the query files to keep driver registration and pragmas in
// one place. Within the store this is the only file that imports the SQLite
// driver; taps.go, casks.go and stats.go work against database/sql alone.
//
// Design: WAL mode lets the MCP server read the catalogue while a tap import
// writes to it. The 5-second busy timeout turns short lock contention into a
// wait instead of a "database is locked" error.

package store

import (
	"context"
	"database/sql"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// NORMAL is safe against corruption under WAL. A crash may lose the last
	// import, which can be re-run.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanCask reads the cask columns selected by caskColumns. Names are loaded
// separately.
func scanCask(sc scanner) (Cask, error) {
	var c Cask
	var version, homepage, desc sql.NullString
	var installed sql.NullInt64

	err := sc.Scan(&c.Tap, &c.Token, &version, &homepage, &desc, &installed, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.Version = version.String
	c.Homepage = homepage.String
	c.Desc = desc.String
	if installed.Valid {
		c.InstalledAt = &installed.Int64
	}
	return c, nil
}

// Tx runs fn in a transaction, committing when fn returns nil and rolling
// back otherwise.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
