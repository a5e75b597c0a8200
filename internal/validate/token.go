// token.go validates cask tokens and declared names.
//
// Tokens are identifiers: lower-case, no whitespace, stable across versions.
// Names are free text for humans ("Google Chrome") and only need to be
// non-empty and printable.

package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var tokenPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9\-.@+]*$`)

// MaxName bounds a declared name.
const MaxName = 256

// Token validates a cask token.
func Token(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	if !tokenPattern.MatchString(t) {
		return fmt.Errorf("%w: %q (lower-case letters, digits and -.@+ only)", ErrInvalidToken, t)
	}
	return nil
}

// Name validates a declared name and returns it with surrounding space
// removed.
func Name(n string) (string, error) {
	n = strings.TrimSpace(n)
	if n == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if len(n) > MaxName {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, MaxName)
	}
	if strings.IndexFunc(n, unicode.IsControl) >= 0 {
		return "", fmt.Errorf("%w: control character in %q", ErrInvalidName, n)
	}
	return n, nil
}
