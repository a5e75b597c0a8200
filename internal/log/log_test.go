package log

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func lastRow(t *testing.T, query string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow(query).Scan(dest...))
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/test/project/.caskfind")

		Log(Entry{
			Source:  "catalog:install",
			Author:  "test-user",
			Action:  "install",
			Target:  "firefox",
			Success: true,
		})

		var source, action, target string
		var success int
		lastRow(t, "SELECT source, action, target, success FROM log ORDER BY id DESC LIMIT 1",
			&source, &action, &target, &success)
		assert.Equal(t, "catalog:install", source)
		assert.Equal(t, "install", action)
		assert.Equal(t, "firefox", target)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Log(Entry{Source: "catalog:info", Action: "info", Target: "nope", Error: "cask not found"})

		var success int
		var msg string
		lastRow(t, "SELECT success, error FROM log ORDER BY id DESC LIMIT 1", &success, &msg)
		assert.Equal(t, 0, success)
		assert.Equal(t, "cask not found", msg)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("success with detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/test/project/.caskfind")

		Event("search:search", "search").
			Author("test-user").
			Detail("term", "chrome").
			Detail("partial", 3).
			Write(nil)

		var source, author, detail string
		var success int
		lastRow(t, "SELECT source, author, success, detail FROM log ORDER BY id DESC LIMIT 1",
			&source, &author, &success, &detail)
		assert.Equal(t, "search:search", source)
		assert.Equal(t, "test-user", author)
		assert.Equal(t, 1, success)
		assert.Contains(t, detail, `"term":"chrome"`)
		assert.Contains(t, detail, `"partial":3`)
	})

	t.Run("failure", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("remote:search", "remote").Write(errors.New("rate limited"))

		var success int
		var msg string
		var target sql.NullString
		lastRow(t, "SELECT success, error, target FROM log ORDER BY id DESC LIMIT 1", &success, &msg, &target)
		assert.Equal(t, 0, success)
		assert.Equal(t, "rate limited", msg)
		assert.False(t, target.Valid)
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project/.caskfind")
	h2 := hash("/home/user/project/.caskfind")
	h3 := hash("/home/user/other/.caskfind")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".caskfind", "log", "caskfind-log.db"), DBPath())
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(&buf, false)

	l.Debug("hidden")
	l.Warn("Error searching on GitHub", "kind", "rate_limit")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "time=")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="Error searching on GitHub"`)
	assert.Contains(t, out, "kind=rate_limit")

	buf.Reset()
	NewConsole(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleTo(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("CASKFIND_DEBUG", "")
	l := ConsoleTo(&buf)
	l.Debug("hidden")
	l.Warn("closing catalogue", "error", "locked")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "error=locked")

	buf.Reset()
	t.Setenv("CASKFIND_DEBUG", "1")
	ConsoleTo(&buf).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
