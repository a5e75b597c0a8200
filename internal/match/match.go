// Package match runs an interpreted query against a catalogue index.
//
// It produces the three local tiers: the exact match, partial matches and
// name matches. Matching is pure; no store or network access happens here.
package match

import (
	"strings"

	"github.com/jpl-au/caskfind/internal/catalog"
	"github.com/jpl-au/caskfind/internal/query"
)

// Set holds the local tiers of one search.
type Set struct {
	Exact   string   // Empty when there is no exact match
	Partial []string // Catalogue order, never contains Exact
	Names   []string // Declared names, first-seen order
}

// HasExact reports whether an exact match was found.
func (s Set) HasExact() bool { return s.Exact != "" }

// Empty reports whether all three tiers are empty.
func (s Set) Empty() bool {
	return s.Exact == "" && len(s.Partial) == 0 && len(s.Names) == 0
}

// Run matches q against idx. Returns an error wrapping
// query.ErrInvalidPattern when a regex query does not compile.
func Run(q query.Query, idx *catalog.Index) (Set, error) {
	if q.Mode == query.Regex {
		return runRegex(q, idx)
	}
	return runLiteral(q, idx), nil
}

// runRegex matches the raw display identifiers, so a pattern may anchor on
// the tap prefix ("/^caskroom\/versions/").
func runRegex(q query.Query, idx *catalog.Index) (Set, error) {
	var s Set
	re, err := q.Compile()
	if err != nil {
		return s, err
	}
	for _, r := range idx.Records() {
		if re.MatchString(r.Identifier) {
			s.Partial = append(s.Partial, r.Identifier)
		}
	}
	for _, n := range idx.Names() {
		if re.MatchString(n) {
			s.Names = append(s.Names, n)
		}
	}
	return s, nil
}

func runLiteral(q query.Query, idx *catalog.Index) Set {
	var s Set
	term := q.Pattern
	exactAt := -1
	for i, r := range idx.Records() {
		if exactAt < 0 && r.Normalized == term {
			exactAt = i
			s.Exact = r.Identifier
			continue
		}
		if strings.Contains(r.Normalized, term) {
			s.Partial = append(s.Partial, r.Identifier)
		}
	}

	// Names are compared without normalisation, so "Google Chrome" does not
	// match the term "googlechrome". Names duplicating exact or partial
	// matches are kept.
	for _, n := range idx.Names() {
		if strings.Contains(strings.ToLower(n), term) {
			s.Names = append(s.Names, n)
		}
	}
	return s
}
