// schema.go embeds the catalogue schema and executes it.
//
// Schema files live in sql/ and run in name order (001_taps, 002_casks,
// 003_cask_names). Each uses IF NOT EXISTS so Init is idempotent.
//
// Extensions can embed their own schemas the same way:
//
//	//go:embed sql/*.sql
//	var extensionSchemas embed.FS
//
//	func (e *Extension) Init(ctx extension.Context) error {
//	    if err := store.ExecEmbedded(ctx.DB(), extensionSchemas, "sql"); err != nil {
//	        return err
//	    }
//	    return nil
//	}

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested cask does not exist.
	ErrNotFound = errors.New("cask not found")
	// ErrTapNotFound indicates the tap is not registered.
	ErrTapNotFound = errors.New("tap not found")
	// ErrAlreadyExists prevents registering a tap twice.
	ErrAlreadyExists = errors.New("tap already exists")
)

// ExecEmbedded executes every .sql file in dir of fsys, in name order.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the catalogue schema.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
