// stats.go implements aggregate catalogue queries.
//
// Separated from the CRUD files: these queries only count. They back the
// taps listing and the db command without loading cask rows.

package store

import (
	"context"
	"fmt"
)

// Stats returns catalogue totals.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM taps`).Scan(&st.Taps)
	if err != nil {
		return nil, fmt.Errorf("count taps: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(installed_at) FROM casks`).Scan(&st.Casks, &st.Installed)
	if err != nil {
		return nil, fmt.Errorf("count casks: %w", err)
	}

	// Distinct names, matching what search sees as the name tier.
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT name) FROM cask_names`).Scan(&st.Names)
	if err != nil {
		return nil, fmt.Errorf("count names: %w", err)
	}

	return &st, nil
}

// TapCounts returns the number of casks per tap.
func (s *SQLiteStore) TapCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tap, COUNT(*) FROM casks GROUP BY tap`)
	if err != nil {
		return nil, fmt.Errorf("count casks per tap: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var tap string
		var n int64
		if err := rows.Scan(&tap, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[tap] = n
	}
	return out, rows.Err()
}
