package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRegexp(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"/^fire.*$/", "^fire.*$", true},
		{"//", "", true},
		{"/a/b/", "a/b", true},
		{"chrome", "", false},
		{"/chrome", "", false},
		{"chrome/", "", false},
		{"/", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ExtractRegexp(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("regex uses first argument only", func(t *testing.T) {
		q := Parse([]string{"/^fire.*$/", "ignored"})
		assert.Equal(t, Regex, q.Mode)
		assert.Equal(t, "^fire.*$", q.Pattern)
		assert.Equal(t, "/^fire.*$/", q.Term)
	})

	t.Run("literal joins arguments", func(t *testing.T) {
		q := Parse([]string{"google", "Chrome"})
		assert.Equal(t, Literal, q.Mode)
		assert.Equal(t, "google Chrome", q.Term)
		assert.Equal(t, "googlechrome", q.Pattern)
	})

	t.Run("regex delimiters in a later argument stay literal", func(t *testing.T) {
		q := Parse([]string{"chrome", "/x/"})
		assert.Equal(t, Literal, q.Mode)
		assert.Equal(t, "chrome /x/", q.Term)
	})

	t.Run("no arguments", func(t *testing.T) {
		q := Parse(nil)
		assert.Equal(t, Literal, q.Mode)
		assert.Empty(t, q.Term)
		assert.Empty(t, q.Pattern)
	})
}

func TestCompile(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		re, err := Parse([]string{"/^FIRE/"}).Compile()
		require.NoError(t, err)
		assert.True(t, re.MatchString("firefox"))
	})

	t.Run("invalid pattern is an error, not a literal fallback", func(t *testing.T) {
		_, err := Parse([]string{"/(unbalanced/"}).Compile()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidPattern))
		assert.Contains(t, err.Error(), "/(unbalanced/")
	})

	t.Run("literal compiles to nil", func(t *testing.T) {
		re, err := Parse([]string{"chrome"}).Compile()
		require.NoError(t, err)
		assert.Nil(t, re)
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chrome", "chrome"},
		{"Google-Chrome", "googlechrome"},
		{"caskroom/versions/firefox-beta", "firefoxbeta"},
		{"java@8", "java8"},
		{"foo.rb", "foorb"},
		{"ünïcode", "ncode"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chrome", "chrome"},
		{"google chrome", "googlechrome"},
		{"firefox.rb", "firefox"},
		{"Firefox.RB", "firefox"},
		{"Casks/firefox.rb", "firefox"},
		{".rb", ""},
		{"rb", "rb"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTerm(tc.in))
		})
	}
}
