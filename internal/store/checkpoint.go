// checkpoint.go flushes the WAL on shutdown.
//
// Separated from sqlite_ops.go because checkpointing runs once per command,
// after the work is done, rather than on every connection.
//
// Design: TRUNCATE mode removes the -wal and -shm files, leaving a single
// database file in .caskfind after each command. A crash mid-checkpoint
// costs a slower recovery on the next open.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
