// Package log records what caskfind did. Audit entries are stored in
// ~/.caskfind/log/caskfind-log.db so searches, tap imports and installs can
// be reviewed across projects; console warnings go to stderr (see Warn).
//
// # Fluent API
//
//	log.Event("search:search", "search").
//		Detail("term", q.Term).
//		Detail("mode", q.Mode.String()).
//		Detail("exact", res.Exact).
//		Write(err)
//
//	log.Event("catalog:install", "install").
//		Target(identifier).
//		Write(err)
//
// The source follows "{extension}:{command}" for CLI commands and
// "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source string // e.g. "search:search", "mcp:caskfind_search"
	Author string
	Action string // search, tap, untap, install, uninstall, remote
	Target string // cask identifier or tap name, when there is one

	Start int64 // unix seconds at Event()
	End   int64 // unix seconds at Write()

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs an Entry. Create with [Event] and finish with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an audit record for an action performed by source.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the action. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Target sets the cask or tap the action applies to.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Detail adds a key-value pair. Search terms, tier sizes and remote failure
// kinds go here.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error; audit logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent entries.
// dir is the absolute path of the .caskfind directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. No-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
