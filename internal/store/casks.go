// casks.go implements cask reads and writes.
//
// Separated from taps.go to keep the per-cask operations together: upsert,
// listing, lookup and installed state.
//
// Design: names live in their own table keyed by declaration position. PutCask
// replaces them wholesale, so re-importing a manifest never leaves stale
// names behind. Listings are ordered by tap then token, which is the
// catalogue order the search index keeps.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/caskfind/internal/validate"
)

const caskColumns = `tap, token, version, homepage, description, installed_at, updated_at`

type caskKey struct{ tap, token string }

// PutCask inserts or replaces a cask and its names.
func (s *SQLiteStore) PutCask(ctx context.Context, c Cask) error {
	tap, err := validate.Tap(c.Tap)
	if err != nil {
		return err
	}
	if err := validate.Token(c.Token); err != nil {
		return err
	}
	names := make([]string, 0, len(c.Names))
	for _, n := range c.Names {
		n, err := validate.Name(n)
		if err != nil {
			return fmt.Errorf("%s/%s: %w", tap, c.Token, err)
		}
		names = append(names, n)
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM taps WHERE name = ?`, tap).Scan(&n); err != nil {
			return fmt.Errorf("check tap %s: %w", tap, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrTapNotFound, tap)
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO casks (tap, token, version, homepage, description, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (tap, token) DO UPDATE SET
				version = excluded.version,
				homepage = excluded.homepage,
				description = excluded.description,
				updated_at = excluded.updated_at`,
			tap, c.Token, nullString(c.Version), nullString(c.Homepage), nullString(c.Desc), time.Now().Unix())
		if err != nil {
			return fmt.Errorf("upsert cask %s/%s: %w", tap, c.Token, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cask_names WHERE tap = ? AND token = ?`, tap, c.Token); err != nil {
			return fmt.Errorf("clear names for %s/%s: %w", tap, c.Token, err)
		}
		for i, name := range names {
			_, err := tx.ExecContext(ctx, `INSERT INTO cask_names (tap, token, position, name) VALUES (?, ?, ?, ?)`,
				tap, c.Token, i, name)
			if err != nil {
				return fmt.Errorf("insert name for %s/%s: %w", tap, c.Token, err)
			}
		}
		return nil
	})
}

// Casks returns every cask with its names, ordered by tap then token.
func (s *SQLiteStore) Casks(ctx context.Context) ([]Cask, error) {
	return s.listCasks(ctx, `SELECT `+caskColumns+` FROM casks ORDER BY tap, token`)
}

// Installed returns installed casks ordered by tap then token.
func (s *SQLiteStore) Installed(ctx context.Context) ([]Cask, error) {
	return s.listCasks(ctx, `SELECT `+caskColumns+` FROM casks WHERE installed_at IS NOT NULL ORDER BY tap, token`)
}

// Cask returns one cask with its names.
func (s *SQLiteStore) Cask(ctx context.Context, tap, token string) (*Cask, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+caskColumns+` FROM casks WHERE tap = ? AND token = ?`, tap, token)
	c, err := scanCask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, tap, token)
	}
	if err != nil {
		return nil, fmt.Errorf("scan cask: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM cask_names WHERE tap = ? AND token = ? ORDER BY position`, tap, token)
	if err != nil {
		return nil, fmt.Errorf("names for %s/%s: %w", tap, token, err)
	}
	defer rows.Close()
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		c.Names = append(c.Names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetInstalled records or clears installed state.
func (s *SQLiteStore) SetInstalled(ctx context.Context, tap, token string, installed bool) error {
	var at any
	if installed {
		at = time.Now().Unix()
	}
	res, err := s.db.ExecContext(ctx, `UPDATE casks SET installed_at = ? WHERE tap = ? AND token = ?`, at, tap, token)
	if err != nil {
		return fmt.Errorf("set installed %s/%s: %w", tap, token, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set installed %s/%s: %w", tap, token, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, tap, token)
	}
	return nil
}

// listCasks runs q and attaches names with a single extra query.
func (s *SQLiteStore) listCasks(ctx context.Context, q string) ([]Cask, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list casks: %w", err)
	}
	var casks []Cask
	pos := make(map[caskKey]int)
	for rows.Next() {
		c, err := scanCask(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cask: %w", err)
		}
		pos[caskKey{c.Tap, c.Token}] = len(casks)
		casks = append(casks, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(casks) == 0 {
		return casks, nil
	}

	nrows, err := s.db.QueryContext(ctx, `SELECT tap, token, name FROM cask_names ORDER BY tap, token, position`)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer nrows.Close()
	for nrows.Next() {
		var k caskKey
		var name string
		if err := nrows.Scan(&k.tap, &k.token, &name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		if i, ok := pos[k]; ok {
			casks[i].Names = append(casks[i].Names, name)
		}
	}
	return casks, nrows.Err()
}
