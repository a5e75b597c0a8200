// taps.go implements tap registration and removal.
//
// Separated from casks.go: a tap is the namespace a cask lives in, and its
// rows are written once per import while casks are written per manifest.
//
// Design: AddTap refuses an existing name with ErrAlreadyExists; replacing a
// tap is RemoveTap followed by AddTap. RemoveTap deletes the tap, its casks
// and their names in one transaction and reports how many casks went.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/caskfind/internal/validate"
)

// AddTap registers a tap. The name is validated and normalised; User and Repo
// are derived from it.
func (s *SQLiteStore) AddTap(ctx context.Context, t Tap) error {
	name, err := validate.Tap(t.Name)
	if err != nil {
		return err
	}
	user, repo := splitTap(name)
	if t.AddedAt == 0 {
		t.AddedAt = time.Now().Unix()
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM taps WHERE name = ?`, name).Scan(&n); err != nil {
			return fmt.Errorf("check tap %s: %w", name, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO taps (name, user, repo, path, added_at) VALUES (?, ?, ?, ?, ?)`,
			name, user, repo, nullString(t.Path), t.AddedAt)
		if err != nil {
			return fmt.Errorf("insert tap %s: %w", name, err)
		}
		return nil
	})
}

// RemoveTap removes a tap, its casks and their names.
func (s *SQLiteStore) RemoveTap(ctx context.Context, name string) (int64, error) {
	name, err := validate.Tap(name)
	if err != nil {
		return 0, err
	}

	var removed int64
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM taps WHERE name = ?`, name)
		if err != nil {
			return fmt.Errorf("delete tap %s: %w", name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrTapNotFound, name)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cask_names WHERE tap = ?`, name); err != nil {
			return fmt.Errorf("delete names for %s: %w", name, err)
		}
		res, err = tx.ExecContext(ctx, `DELETE FROM casks WHERE tap = ?`, name)
		if err != nil {
			return fmt.Errorf("delete casks for %s: %w", name, err)
		}
		removed, _ = res.RowsAffected()
		return nil
	})
	return removed, err
}

// Taps returns every tap ordered by name.
func (s *SQLiteStore) Taps(ctx context.Context) ([]Tap, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, user, repo, path, added_at FROM taps ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list taps: %w", err)
	}
	defer rows.Close()

	var taps []Tap
	for rows.Next() {
		var t Tap
		var p sql.NullString
		if err := rows.Scan(&t.Name, &t.User, &t.Repo, &p, &t.AddedAt); err != nil {
			return nil, fmt.Errorf("scan tap: %w", err)
		}
		t.Path = p.String
		taps = append(taps, t)
	}
	return taps, rows.Err()
}

// TapExists reports whether a tap is registered. Invalid names are reported
// as absent.
func (s *SQLiteStore) TapExists(ctx context.Context, name string) (bool, error) {
	name, err := validate.Tap(name)
	if err != nil {
		return false, nil
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM taps WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("check tap %s: %w", name, err)
	}
	return n > 0, nil
}

// splitTap splits a validated "user/repo".
func splitTap(name string) (string, string) {
	user, repo, _ := strings.Cut(name, "/")
	return user, repo
}
