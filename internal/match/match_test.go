package match

import (
	"errors"
	"testing"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browsers() *catalog.Index {
	return catalog.Build([]string{"chrome", "firefox", "chrome-beta", "chromium"}, nil)
}

func run(t *testing.T, idx *catalog.Index, args ...string) Set {
	t.Helper()
	s, err := Run(query.Parse(args), idx)
	require.NoError(t, err)
	return s
}

func TestRun_Literal(t *testing.T) {
	t.Run("exact and partial", func(t *testing.T) {
		s := run(t, browsers(), "chrome")
		assert.Equal(t, "chrome", s.Exact)
		assert.Equal(t, []string{"chrome-beta"}, s.Partial)
		assert.Empty(t, s.Names)
	})

	t.Run("substring only", func(t *testing.T) {
		// chromium shares "chrom" with the term but does not contain it.
		s := run(t, browsers(), "chrome")
		assert.NotContains(t, s.Partial, "chromium")
	})

	t.Run("partial only", func(t *testing.T) {
		s := run(t, browsers(), "chr")
		assert.False(t, s.HasExact())
		assert.Equal(t, []string{"chrome", "chrome-beta", "chromium"}, s.Partial)
	})

	t.Run("case and punctuation ignored", func(t *testing.T) {
		s := run(t, browsers(), "Fire-Fox")
		assert.Equal(t, "firefox", s.Exact)
		assert.Empty(t, s.Partial)
	})

	t.Run("rb suffix stripped from term", func(t *testing.T) {
		s := run(t, browsers(), "firefox.rb")
		assert.Equal(t, "firefox", s.Exact)
	})

	t.Run("no match", func(t *testing.T) {
		s := run(t, browsers(), "safari")
		assert.True(t, s.Empty())
	})

	t.Run("multiple words joined", func(t *testing.T) {
		idx := catalog.Build([]string{"google-chrome", "chrome"}, nil)
		s := run(t, idx, "google", "chrome")
		assert.Equal(t, "google-chrome", s.Exact)
		assert.Empty(t, s.Partial)
	})
}

func TestRun_LiteralQualified(t *testing.T) {
	idx := catalog.Build([]string{
		"caskroom/versions/firefox-beta",
		"caskroom/versions/firefox",
		"firefox",
	}, nil)

	s := run(t, idx, "firefox")
	assert.Equal(t, "caskroom/versions/firefox", s.Exact, "first in catalogue order wins")
	assert.Equal(t, []string{"caskroom/versions/firefox-beta", "firefox"}, s.Partial)
	assert.NotContains(t, s.Partial, s.Exact)
}

func TestRun_ExactNeverPartial(t *testing.T) {
	ids := []string{"a", "ab", "abc", "x/y/abc", "b-c", "bc"}
	idx := catalog.Build(ids, nil)
	for _, id := range ids {
		s := run(t, idx, id)
		if s.HasExact() {
			assert.NotContains(t, s.Partial, s.Exact, "term %q", id)
			assert.Equal(t, query.Normalize(s.Exact), query.NormalizeTerm(id))
		}
	}
}

func TestRun_Names(t *testing.T) {
	idx := catalog.Build(
		[]string{"chrome", "chromium", "firefox"},
		[]catalog.Entry{
			{Identifier: "chrome", Names: []string{"Google Chrome"}},
			{Identifier: "chromium", Names: []string{"Chromium"}},
			{Identifier: "firefox", Names: []string{"Mozilla Firefox"}},
		},
	)

	t.Run("substring of lower-cased name", func(t *testing.T) {
		s := run(t, idx, "chrom")
		assert.Equal(t, []string{"Google Chrome", "Chromium"}, s.Names)
	})

	t.Run("names duplicating exact are kept", func(t *testing.T) {
		s := run(t, idx, "chromium")
		assert.Equal(t, "chromium", s.Exact)
		assert.Equal(t, []string{"Chromium"}, s.Names)
	})

	t.Run("names are not normalised", func(t *testing.T) {
		s := run(t, idx, "google", "chrome")
		assert.Empty(t, s.Names, "term normalises to googlechrome, name keeps its space")
	})
}

func TestRun_Regex(t *testing.T) {
	t.Run("partial only", func(t *testing.T) {
		s := run(t, browsers(), "/^fire.*$/")
		assert.False(t, s.HasExact())
		assert.Equal(t, []string{"firefox"}, s.Partial)
	})

	t.Run("case insensitive", func(t *testing.T) {
		s := run(t, browsers(), "/CHROM/")
		assert.Equal(t, []string{"chrome", "chrome-beta", "chromium"}, s.Partial)
	})

	t.Run("exact name is still partial", func(t *testing.T) {
		s := run(t, browsers(), "/^chrome$/")
		assert.False(t, s.HasExact())
		assert.Equal(t, []string{"chrome"}, s.Partial)
	})

	t.Run("raw identifiers include tap prefix", func(t *testing.T) {
		idx := catalog.Build([]string{"caskroom/versions/firefox-beta", "firefox"}, nil)
		s := run(t, idx, `/^caskroom\/versions\//`)
		assert.Equal(t, []string{"caskroom/versions/firefox-beta"}, s.Partial)
	})

	t.Run("names", func(t *testing.T) {
		idx := catalog.Build([]string{"firefox"}, []catalog.Entry{
			{Identifier: "firefox", Names: []string{"Mozilla Firefox"}},
		})
		s := run(t, idx, "/^mozilla/")
		assert.Equal(t, []string{"Mozilla Firefox"}, s.Names)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := Run(query.Parse([]string{"/([a-/"}), browsers())
		require.Error(t, err)
		assert.True(t, errors.Is(err, query.ErrInvalidPattern))
	})
}
