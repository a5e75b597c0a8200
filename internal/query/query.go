// Package query interprets raw search arguments.
//
// A query is either a literal term, compared against catalogue identifiers
// after normalisation, or a regular expression written between slashes
// ("/^fire.*$/"). The mode is decided by the first argument alone.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a regex query does not compile.
var ErrInvalidPattern = errors.New("invalid query pattern")

// Mode selects how a query is matched.
type Mode int

const (
	// Literal compares normalised identifiers against a normalised term.
	Literal Mode = iota
	// Regex matches raw identifiers against a case-insensitive pattern.
	Regex
)

// String returns "literal" or "regex".
func (m Mode) String() string {
	if m == Regex {
		return "regex"
	}
	return "literal"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Query is an interpreted search request.
type Query struct {
	Args    []string // Raw arguments as typed
	Mode    Mode
	Pattern string // Regex body, or the normalised literal term
	Term    string // Display term: the first argument for regex, all arguments joined otherwise
}

var delimited = regexp.MustCompile(`^/(.*)/$`)

// ExtractRegexp returns the pattern between slash delimiters.
// Reports false when s is not written as /pattern/.
func ExtractRegexp(s string) (string, bool) {
	m := delimited.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Parse interprets args. An empty args slice yields an empty literal query.
func Parse(args []string) Query {
	q := Query{Args: args}
	if len(args) > 0 {
		if p, ok := ExtractRegexp(args[0]); ok {
			q.Mode = Regex
			q.Pattern = p
			q.Term = args[0]
			return q
		}
	}
	q.Mode = Literal
	q.Term = strings.Join(args, " ")
	q.Pattern = NormalizeTerm(q.Term)
	return q
}

// Compile returns the case-insensitive matcher for a regex query.
// Literal queries compile to nil; they are matched by substring.
func (q Query) Compile() (*regexp.Regexp, error) {
	if q.Mode != Regex {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + q.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPattern, q.Term, err)
	}
	return re, nil
}
