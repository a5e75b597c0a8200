// listing.go implements the display form of catalogue identifiers.

package catalog

import (
	"slices"
)

// NiceListing returns display identifiers for tokens: casks from defaultTap
// appear bare, all others qualified as "user/repo/token". The result is
// sorted and deduplicated.
func NiceListing(tokens []Token, defaultTap string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Display(t, defaultTap))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Display returns the display identifier of a single token.
func Display(t Token, defaultTap string) string {
	if t.Tap == "" || t.Tap == defaultTap {
		return t.Token
	}
	return t.Tap + "/" + t.Token
}
