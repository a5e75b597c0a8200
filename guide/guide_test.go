package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	main, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, main, "# caskfind")

	search, err := Get("search")
	require.NoError(t, err)
	assert.Contains(t, search, "Regexp Matches")

	_, err = Get("missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "install", "mcp", "search", "tap"}, names)
}
