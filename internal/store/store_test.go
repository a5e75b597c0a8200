package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/caskfind/internal/store"
	"github.com/jpl-au/caskfind/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

// seed registers caskroom/cask with a few casks.
func seed(t *testing.T, s *store.SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.AddTap(ctx, store.Tap{Name: "caskroom/cask"}))
	require.NoError(t, s.PutCask(ctx, store.Cask{Tap: "caskroom/cask", Token: "firefox", Names: []string{"Mozilla Firefox", "Firefox"}, Version: "120.0"}))
	require.NoError(t, s.PutCask(ctx, store.Cask{Tap: "caskroom/cask", Token: "chrome", Names: []string{"Google Chrome"}}))
}

func TestStore_InitIdempotent(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Init())
}

func TestStore_Taps(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddTap(ctx, store.Tap{Name: "Caskroom/Homebrew-Versions", Path: "/src/versions"}))
	require.NoError(t, s.AddTap(ctx, store.Tap{Name: "caskroom/cask"}))

	taps, err := s.Taps(ctx)
	require.NoError(t, err)
	require.Len(t, taps, 2)
	assert.Equal(t, "caskroom/cask", taps[0].Name)
	assert.Equal(t, "caskroom/versions", taps[1].Name)
	assert.Equal(t, "caskroom", taps[1].User)
	assert.Equal(t, "versions", taps[1].Repo)
	assert.Equal(t, "/src/versions", taps[1].Path)
	assert.NotZero(t, taps[1].AddedAt)

	ok, err := s.TapExists(ctx, "caskroom/versions")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TapExists(ctx, "caskroom/fonts")
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.AddTap(ctx, store.Tap{Name: "caskroom/cask"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	err = s.AddTap(ctx, store.Tap{Name: "nope"})
	assert.ErrorIs(t, err, validate.ErrInvalidTap)
}

func TestStore_RemoveTapCascades(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seed(t, s)

	n, err := s.RemoveTap(ctx, "caskroom/cask")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	casks, err := s.Casks(ctx)
	require.NoError(t, err)
	assert.Empty(t, casks)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Names)

	_, err = s.RemoveTap(ctx, "caskroom/cask")
	assert.ErrorIs(t, err, store.ErrTapNotFound)
}

func TestStore_PutCask(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seed(t, s)

	t.Run("read back", func(t *testing.T) {
		c, err := s.Cask(ctx, "caskroom/cask", "firefox")
		require.NoError(t, err)
		assert.Equal(t, []string{"Mozilla Firefox", "Firefox"}, c.Names)
		assert.Equal(t, "120.0", c.Version)
		assert.False(t, c.Installed())
	})

	t.Run("upsert replaces names and keeps installed state", func(t *testing.T) {
		require.NoError(t, s.SetInstalled(ctx, "caskroom/cask", "firefox", true))
		require.NoError(t, s.PutCask(ctx, store.Cask{Tap: "caskroom/cask", Token: "firefox", Names: []string{"Firefox"}, Version: "121.0"}))

		c, err := s.Cask(ctx, "caskroom/cask", "firefox")
		require.NoError(t, err)
		assert.Equal(t, []string{"Firefox"}, c.Names)
		assert.Equal(t, "121.0", c.Version)
		assert.True(t, c.Installed())
	})

	t.Run("unknown tap", func(t *testing.T) {
		err := s.PutCask(ctx, store.Cask{Tap: "caskroom/fonts", Token: "font-x"})
		assert.ErrorIs(t, err, store.ErrTapNotFound)
	})

	t.Run("invalid token", func(t *testing.T) {
		err := s.PutCask(ctx, store.Cask{Tap: "caskroom/cask", Token: "Bad Token"})
		assert.ErrorIs(t, err, validate.ErrInvalidToken)
	})

	t.Run("invalid name", func(t *testing.T) {
		err := s.PutCask(ctx, store.Cask{Tap: "caskroom/cask", Token: "ok", Names: []string{" "}})
		assert.ErrorIs(t, err, validate.ErrInvalidName)
	})

	t.Run("missing cask", func(t *testing.T) {
		_, err := s.Cask(ctx, "caskroom/cask", "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestStore_CasksOrder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seed(t, s)
	require.NoError(t, s.AddTap(ctx, store.Tap{Name: "caskroom/versions"}))
	require.NoError(t, s.PutCask(ctx, store.Cask{Tap: "caskroom/versions", Token: "firefox-beta", Names: []string{"Firefox Beta"}}))

	casks, err := s.Casks(ctx)
	require.NoError(t, err)
	require.Len(t, casks, 3)
	assert.Equal(t, "chrome", casks[0].Token)
	assert.Equal(t, []string{"Google Chrome"}, casks[0].Names)
	assert.Equal(t, "firefox", casks[1].Token)
	assert.Equal(t, "caskroom/versions", casks[2].Tap)
	assert.Equal(t, []string{"Firefox Beta"}, casks[2].Names)
}

func TestStore_Installed(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seed(t, s)

	require.NoError(t, s.SetInstalled(ctx, "caskroom/cask", "chrome", true))

	inst, err := s.Installed(ctx)
	require.NoError(t, err)
	require.Len(t, inst, 1)
	assert.Equal(t, "chrome", inst[0].Token)
	assert.Equal(t, []string{"Google Chrome"}, inst[0].Names)

	require.NoError(t, s.SetInstalled(ctx, "caskroom/cask", "chrome", false))
	inst, err = s.Installed(ctx)
	require.NoError(t, err)
	assert.Empty(t, inst)

	err = s.SetInstalled(ctx, "caskroom/cask", "nope", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Stats(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seed(t, s)
	require.NoError(t, s.SetInstalled(ctx, "caskroom/cask", "firefox", true))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Taps)
	assert.Equal(t, int64(2), st.Casks)
	assert.Equal(t, int64(3), st.Names)
	assert.Equal(t, int64(1), st.Installed)

	counts, err := s.TapCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"caskroom/cask": 2}, counts)
}

func TestStore_Checkpoint(t *testing.T) {
	s := setupStore(t)
	seed(t, s)
	require.NoError(t, s.Checkpoint(context.Background()))
}
