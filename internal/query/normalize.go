// normalize.go reduces identifiers and literal terms to a comparable form.
//
// "caskroom/versions/Firefox-Beta" and "firefox beta.rb" both reduce to
// "firefoxbeta". Only ASCII letters and digits survive.

package query

import "strings"

// Normalize reduces a catalogue identifier: the namespace prefix up to the
// last "/" is dropped, then every non-alphanumeric ASCII rune, then the
// remainder is lower-cased.
func Normalize(identifier string) string {
	if i := strings.LastIndex(identifier, "/"); i >= 0 {
		identifier = identifier[i+1:]
	}
	return alnum(identifier)
}

// NormalizeTerm reduces a literal search term the same way as Normalize and
// additionally drops a trailing ".rb", so a pasted cask file name still
// matches its token.
func NormalizeTerm(term string) string {
	if i := strings.LastIndex(term, "/"); i >= 0 {
		term = term[i+1:]
	}
	if n := len(term); n >= 3 && strings.EqualFold(term[n-3:], ".rb") {
		term = term[:n-3]
	}
	return alnum(term)
}

func alnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}
