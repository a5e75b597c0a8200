package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTap(t *testing.T) {
	env := newTestEnv(t)
	src := env.writeTap(map[string]string{
		"firefox.yaml": "name: Mozilla Firefox\n",
		"iterm2.yml":   "token: iterm2\nname: [iTerm2]\n",
		".hidden.yaml": "name: Hidden\n",
		"README.md":    "not a manifest\n",
	})

	out := env.run("tap", "caskroom/cask", src)
	env.equals(out, "Tapped caskroom/cask (2 casks)")

	out = env.run("taps")
	env.contains(out, "TAP")
	env.contains(out, "caskroom/cask")
	env.contains(out, src)

	out, _ = env.stdout("search")
	assert.Equal(t, "firefox\niterm2\n", out)
}

func TestTap_DryRun(t *testing.T) {
	env := newTestEnv(t)
	src := env.writeTap(map[string]string{"firefox.yaml": "name: Mozilla Firefox\n"})

	out := env.run("tap", "caskroom/cask", src, "--dry-run")
	env.equals(out, "Would import: Casks/firefox.yaml -> caskroom/cask/firefox")

	out, _ = env.stdout("search")
	assert.Empty(t, out)
}

func TestTap_IncludeHidden(t *testing.T) {
	env := newTestEnv(t)
	src := env.writeTap(map[string]string{
		"firefox.yaml": "name: Mozilla Firefox\n",
		".beta.yaml":   "token: firefox-beta\nname: Mozilla Firefox\n",
	})

	env.run("tap", "caskroom/cask", src, "--include-hidden")

	out, _ := env.stdout("search")
	assert.Equal(t, "firefox\nfirefox-beta\n", out)
}

func TestTap_Retap(t *testing.T) {
	env := newTestEnv(t)
	env.tap("acme/apps", map[string]string{"one.yaml": "name: One\n", "two.yaml": "name: Two\n"})
	src := env.writeTap(map[string]string{"three.yaml": "name: Three\n"})

	out, err := env.runErr("tap", "acme/apps", src)
	assert.Error(t, err)
	env.contains(out, "tap already exists")

	env.run("tap", "acme/apps", src, "--force")
	out, _ = env.stdout("search")
	assert.Equal(t, "acme/apps/three\n", out)
}

func TestTap_JSON(t *testing.T) {
	env := newTestEnv(t)
	src := env.writeTap(map[string]string{"firefox.yaml": "name: Mozilla Firefox\n"})

	out, _ := env.stdout("tap", "caskroom/cask", src, "-o", "json")
	assert.JSONEq(t, `{"tap":"caskroom/cask","imported":1,"tokens":["firefox"]}`, out)

	out, _ = env.stdout("taps", "-o", "json")
	env.contains(out, `"name":"caskroom/cask"`)
	env.contains(out, `"casks":1`)
}

func TestTap_Errors(t *testing.T) {
	env := newTestEnv(t)

	t.Run("invalid tap name", func(t *testing.T) {
		src := env.writeTap(map[string]string{"firefox.yaml": "name: Firefox\n"})
		_, err := env.runErr("tap", "caskroom", src)
		assert.Error(t, err)
	})

	t.Run("no manifests", func(t *testing.T) {
		src := env.writeTap(nil)
		out, err := env.runErr("tap", "caskroom/cask", src)
		assert.Error(t, err)
		env.contains(out, "no cask manifests")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := env.runErr("tap", "caskroom/cask", filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		src := env.writeTap(map[string]string{"firefox.yaml": "name: [unclosed\n"})
		_, err := env.runErr("tap", "caskroom/cask", src)
		assert.Error(t, err)
	})

	t.Run("nothing imported on error", func(t *testing.T) {
		out, _ := env.stdout("taps", "-o", "json")
		assert.JSONEq(t, `[]`, out)
	})
}

func TestUntap(t *testing.T) {
	env := withCasks(t)

	out := env.run("untap", "caskroom/versions")
	env.equals(out, "Untapped caskroom/versions (1 casks)")

	out, _ = env.stdout("search")
	assert.NotContains(t, out, "firefox-beta")

	_, err := env.runErr("untap", "caskroom/versions")
	assert.Error(t, err)
}

func TestTap_Manifest(t *testing.T) {
	env := newTestEnv(t)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Casks"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Casks", "firefox.yaml"), []byte(`token: firefox
name:
  - Mozilla Firefox
version: "121.0"
homepage: https://www.mozilla.org/firefox/
desc: Web browser
`), 0644))

	env.run("tap", "caskroom/cask", src)

	out := env.run("info", "firefox")
	env.contains(out, "firefox: 121.0")
	env.contains(out, "Mozilla Firefox")
	env.contains(out, "https://www.mozilla.org/firefox/")
	env.contains(out, "Web browser")
	env.contains(out, "Not installed")
}
