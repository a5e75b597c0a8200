package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstall(t *testing.T) {
	env := withCasks(t)

	out := env.run("install", "firefox", "firefox-beta")
	env.contains(out, "Installed: firefox")
	// A bare token outside the default tap resolves to its one tap.
	env.contains(out, "Installed: caskroom/versions/firefox-beta")

	out, _ = env.stdout("list")
	assert.Equal(t, "caskroom/versions/firefox-beta\nfirefox\n", out)

	out = env.run("info", "firefox")
	env.contains(out, "Installed:")
	assert.NotContains(t, out, "Not installed")

	out = env.run("uninstall", "caskroom/versions/firefox-beta")
	env.equals(out, "Uninstalled: caskroom/versions/firefox-beta")

	out, _ = env.stdout("list", "-o", "json")
	assert.JSONEq(t, `["firefox"]`, out)
}

func TestInstall_Errors(t *testing.T) {
	env := withCasks(t)

	out, err := env.runErr("install", "safari")
	assert.Error(t, err)
	env.contains(out, "cask not found")

	_, err = env.runErr("install")
	assert.Error(t, err)

	// Nothing was recorded.
	out, _ = env.stdout("list")
	assert.Empty(t, out)
}

func TestInstall_Ambiguous(t *testing.T) {
	env := withCasks(t)
	env.tap("acme/apps", map[string]string{"firefox-beta.yaml": "name: Firefox Beta\n"})

	out, err := env.runErr("info", "firefox-beta")
	assert.Error(t, err)
	env.contains(out, "ambiguous cask token")

	out = env.run("info", "acme/apps/firefox-beta")
	env.contains(out, "Firefox Beta")
}

func TestInfo_JSON(t *testing.T) {
	env := withCasks(t)
	env.run("install", "google-drive")

	out, _ := env.stdout("info", "google-drive", "-o", "json")
	env.contains(out, `"tap":"caskroom/cask"`)
	env.contains(out, `"names":["Google Drive","Google Backup and Sync"]`)
	env.contains(out, `"installed":true`)
}
