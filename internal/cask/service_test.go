package cask

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/repo"
	"github.com/jpl-au/caskfind/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))

	svc, err := Open(filepath.Join(dir, ".caskfind", "caskfind.db"), &config.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	ctx := context.Background()
	_, err = svc.AddTap(ctx, "caskroom/homebrew-cask", "")
	require.NoError(t, err)
	_, err = svc.AddTap(ctx, "caskroom/versions", "")
	require.NoError(t, err)
	for _, c := range []store.Cask{
		{Tap: "caskroom/cask", Token: "firefox", Names: []string{"Mozilla Firefox"}},
		{Tap: "caskroom/cask", Token: "chrome", Names: []string{"Google Chrome"}},
		{Tap: "caskroom/versions", Token: "firefox-beta", Names: []string{"Mozilla Firefox"}},
		{Tap: "caskroom/versions", Token: "java8"},
	} {
		require.NoError(t, svc.PutCask(ctx, c))
	}
	return svc
}

func TestIdentifiers(t *testing.T) {
	svc := newService(t)
	ids, err := svc.Identifiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"caskroom/versions/firefox-beta", "caskroom/versions/java8", "chrome", "firefox"}, ids)
}

func TestEntries(t *testing.T) {
	svc := newService(t)
	entries, err := svc.Entries(context.Background())
	require.NoError(t, err)
	assert.Contains(t, entries, catalog.Entry{Identifier: "caskroom/versions/firefox-beta", Names: []string{"Mozilla Firefox"}})
	assert.Contains(t, entries, catalog.Entry{Identifier: "firefox", Names: []string{"Mozilla Firefox"}})
}

func TestResolve(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	c, err := svc.Resolve(ctx, "firefox")
	require.NoError(t, err)
	assert.Equal(t, "caskroom/cask", c.Tap)

	c, err = svc.Resolve(ctx, "caskroom/versions/firefox-beta")
	require.NoError(t, err)
	assert.Equal(t, "firefox-beta", c.Token)

	// Bare token published by a single non-default tap.
	c, err = svc.Resolve(ctx, "java8")
	require.NoError(t, err)
	assert.Equal(t, "caskroom/versions", c.Tap)
	assert.Equal(t, "caskroom/versions/java8", svc.Identifier(c))

	_, err = svc.Resolve(ctx, "caskroom/cask/java8")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveAmbiguous(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.AddTap(ctx, "acme/tools", "")
	require.NoError(t, err)
	require.NoError(t, svc.PutCask(ctx, store.Cask{Tap: "acme/tools", Token: "java8"}))

	_, err = svc.Resolve(ctx, "java8")
	assert.ErrorIs(t, err, ErrAmbiguous)

	ok, err := svc.IsInstalled(ctx, "java8")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInstall(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	c, err := svc.Install(ctx, "chrome")
	require.NoError(t, err)
	assert.True(t, c.Installed())

	_, err = svc.Install(ctx, "caskroom/versions/java8")
	require.NoError(t, err)

	ids, err := svc.Installed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"caskroom/versions/java8", "chrome"}, ids)

	ok, err := svc.IsInstalled(ctx, "chrome")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsInstalled(ctx, "caskroom/fonts/font-x")
	require.NoError(t, err)
	assert.False(t, ok)

	c, err = svc.Uninstall(ctx, "chrome")
	require.NoError(t, err)
	assert.False(t, c.Installed())

	_, err = svc.Install(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaps(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	ok, err := svc.TapInstalled(ctx, "caskroom/versions")
	require.NoError(t, err)
	assert.True(t, ok)

	tap, err := svc.ResolveTap("caskroom/homebrew-fonts")
	require.NoError(t, err)
	assert.Equal(t, "caskroom/fonts", tap.Name())

	ok, err = svc.TapInstalled(ctx, tap.Name())
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := svc.RemoveTap(ctx, "caskroom/versions")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ids, err := svc.Identifiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chrome", "firefox"}, ids)
}

func TestDefaultTapFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))
	cfg := &config.Config{}
	require.NoError(t, cfg.Set("catalog.default_tap", "caskroom/versions"))

	svc, err := Open(filepath.Join(dir, ".caskfind", "caskfind.db"), cfg)
	require.NoError(t, err)
	defer svc.Close()
	ctx := context.Background()

	_, err = svc.AddTap(ctx, "caskroom/cask", "")
	require.NoError(t, err)
	_, err = svc.AddTap(ctx, "caskroom/versions", "")
	require.NoError(t, err)
	require.NoError(t, svc.PutCask(ctx, store.Cask{Tap: "caskroom/cask", Token: "firefox"}))
	require.NoError(t, svc.PutCask(ctx, store.Cask{Tap: "caskroom/versions", Token: "firefox-beta"}))

	ids, err := svc.Identifiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"caskroom/cask/firefox", "firefox-beta"}, ids)
}

func TestNewWithDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))

	svc, err := New("", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".caskfind", "caskfind.db"), svc.DBPath())
	require.NoError(t, svc.Close())

	_, err = New("work", dir)
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}
