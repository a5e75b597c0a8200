// The cmd/ package holds CLI integration tests that exercise the full stack:
// command parsing -> extension -> service -> store -> SQLite.
//
// Each test builds on a fresh catalogue in a temp directory with HOME
// pointed at another temp directory, so global config and the audit log
// never touch the real home directory.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the caskfind binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "caskfind-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "caskfind"
		if os.PathSeparator == '\\' {
			binaryName = "caskfind.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/.
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates an environment without a catalogue.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates a temporary directory with an initialised catalogue.
// Remote search is switched off; tests that need it point remote.api_url
// at an httptest server and switch it back on.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newBareEnv(t)
	env.run("init")
	env.run("config", "--local", "remote.enabled", "false")
	return env
}

// withCasks creates an environment with caskroom/cask and caskroom/versions
// imported:
//
//	caskroom/cask:     firefox, google-chrome, google-drive, iterm2
//	caskroom/versions: firefox-beta
func withCasks(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t)
	env.tap("caskroom/cask", map[string]string{
		"firefox.yaml":       "name: Mozilla Firefox\nversion: \"121.0\"\nhomepage: https://www.mozilla.org/firefox/\n",
		"google-chrome.yaml": "name: Google Chrome\n",
		"google-drive.yaml":  "name: [Google Drive, Google Backup and Sync]\n",
		"iterm2.yaml":        "name: iTerm2\n",
	})
	env.tap("caskroom/versions", map[string]string{
		"firefox-beta.yaml": "name: Mozilla Firefox\n",
	})
	return env
}

// writeTap writes manifests under a new tap directory and returns its path.
func (e *testEnv) writeTap(manifests map[string]string) string {
	e.t.Helper()

	src := e.t.TempDir()
	casks := filepath.Join(src, "Casks")
	require.NoError(e.t, os.MkdirAll(casks, 0755))
	for name, body := range manifests {
		require.NoError(e.t, os.WriteFile(filepath.Join(casks, name), []byte(body), 0644))
	}
	return src
}

// tap writes manifests and imports them as name.
func (e *testEnv) tap(name string, manifests map[string]string) {
	e.t.Helper()
	e.run("tap", name, e.writeTap(manifests))
}

// command prepares caskfind with HOME isolated.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"CASKFIND_DB=",
		"CASKFIND_DIR=",
		"GITHUB_TOKEN=",
	)
	return cmd
}

// run executes caskfind with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("caskfind %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes caskfind and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// stdout executes caskfind and returns stdout and stderr separately.
func (e *testEnv) stdout(args ...string) (string, string) {
	e.t.Helper()
	cmd := e.command(args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		e.t.Fatalf("caskfind %v failed: %v\nstderr: %s", args, err, stderr.String())
	}
	return string(out), stderr.String()
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
