// Package repo initialises and discovers caskfind catalogues.
//
// A catalogue is a SQLite database in a .caskfind directory. A project may
// hold several (caskfind.db, caskfind-work.db, ...); each is either shared
// (committed) or local (listed in .caskfind/.gitignore).
//
// Discovery walks up from the working directory until a .caskfind directory
// holding the requested database is found, the way git finds .git.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/caskfind/internal/store"
)

const (
	// Dir is the directory holding catalogues and local config.
	Dir = ".caskfind"
	// DBFile is the default catalogue filename.
	DBFile = "caskfind.db"

	dbPrefix = "caskfind-"
)

// ErrNotInitialised is returned when no catalogue is found.
var ErrNotInitialised = errors.New("caskfind not initialised (run 'caskfind init')")

// DBFileName returns the filename for a named catalogue: "" is caskfind.db,
// "work" is caskfind-work.db, and names ending in .db are used as given.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return dbPrefix + name + ".db"
}

// gitignoreTemplate is written on first init. Catalogues are shared unless
// marked local.
const gitignoreTemplate = `# caskfind - local config is per user
config.yaml
`

// Init creates a catalogue in dir (the working directory when empty).
// force replaces an existing catalogue; local adds it to .gitignore.
// Config is not written; see "caskfind config".
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	root := filepath.Join(dir, Dir)
	dbPath := filepath.Join(root, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("catalogue %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove catalogue: %w", err)
		}
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()
	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only written once so local markers added later survive re-init.
	gitignore := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		if err := os.WriteFile(gitignore, []byte(gitignoreTemplate), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, root); err != nil {
			return fmt.Errorf("ignore catalogue: %w", err)
		}
	}
	return nil
}

// Discover walks up from the working directory looking for the named
// catalogue and returns its path.
func Discover(db string) (string, error) {
	file := DBFileName(db)
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir, file)
		if _, err := os.Stat(p); err == nil {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// DiscoverDir walks up from the working directory looking for a .caskfind
// directory and returns its path.
func DiscoverDir() (string, error) {
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// walkUp calls match for the working directory and each parent until it
// returns true. Returns ErrNotInitialised at the filesystem root.
func walkUp(match func(dir string) bool) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	for {
		if match(dir) {
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo describes a catalogue file.
type DBInfo struct {
	Name  string // "" for the default catalogue, "work" for caskfind-work.db
	File  string
	Path  string
	Local bool // listed in .gitignore
}

// ListDBs returns the catalogues in dir, a .caskfind directory (discovered
// when empty).
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, err
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	ignored, err := ignoredSet(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var dbs []DBInfo
	for _, e := range entries {
		file := e.Name()
		var name string
		switch {
		case file == DBFile:
		case strings.HasPrefix(file, dbPrefix) && strings.HasSuffix(file, ".db"):
			name = strings.TrimSuffix(strings.TrimPrefix(file, dbPrefix), ".db")
		default:
			continue
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  file,
			Path:  filepath.Join(dir, file),
			Local: ignored[file],
		})
	}
	return dbs, nil
}
