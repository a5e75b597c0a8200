// Package catalog defines the cask catalogue seen by search: the identifiers
// it lists, the human-readable names casks declare, and the narrow
// capabilities search needs from the rest of the system (enumeration,
// installed state, tap resolution).
//
// Implementations live in internal/cask; tests substitute fakes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when the catalogue cannot be enumerated.
// Search cannot proceed without it.
var ErrUnavailable = errors.New("catalog unavailable")

// ErrInvalidTap is returned for tap names that are not "user/repo".
var ErrInvalidTap = errors.New("invalid tap name")

// Entry is one cask as seen by the matcher: its display identifier and the
// names it declares.
type Entry struct {
	Identifier string
	Names      []string
}

// Token is a cask token qualified by the tap that publishes it.
type Token struct {
	Tap   string // "user/repo"
	Token string
}

// Provider enumerates the catalogue.
type Provider interface {
	// Identifiers returns every display identifier, sorted and deduplicated.
	Identifiers(ctx context.Context) ([]string, error)
	// Entries returns every cask with the names it declares.
	Entries(ctx context.Context) ([]Entry, error)
}

// InstalledOracle answers installed-state questions.
type InstalledOracle interface {
	// IsInstalled reports whether the cask behind a display identifier is installed.
	IsInstalled(ctx context.Context, identifier string) (bool, error)
	// TapInstalled reports whether a tap ("user/repo") is present locally.
	TapInstalled(ctx context.Context, tap string) (bool, error)
}

// Resolver turns a source repository name into a tap.
type Resolver interface {
	ResolveTap(fullName string) (Tap, error)
}

// Tap is a namespace of casks backed by one source repository.
type Tap struct {
	User string
	Repo string
}

// repoPrefix is carried by tap repository names on the hosting side
// ("caskroom/homebrew-versions") but not by the tap name ("caskroom/versions").
const repoPrefix = "homebrew-"

// ParseTap parses "user/repo" or a repository full name "user/homebrew-repo".
// Both components are lower-cased.
func ParseTap(name string) (Tap, error) {
	user, repo, ok := strings.Cut(name, "/")
	if !ok || user == "" || repo == "" || strings.Contains(repo, "/") {
		return Tap{}, fmt.Errorf("%w: %q (expected user/repo)", ErrInvalidTap, name)
	}
	repo = strings.TrimPrefix(strings.ToLower(repo), repoPrefix)
	if repo == "" {
		return Tap{}, fmt.Errorf("%w: %q (empty repository)", ErrInvalidTap, name)
	}
	return Tap{User: strings.ToLower(user), Repo: repo}, nil
}

// Name returns "user/repo".
func (t Tap) Name() string { return t.User + "/" + t.Repo }

// FullName returns the hosting repository name, "user/homebrew-repo".
func (t Tap) FullName() string { return t.User + "/" + repoPrefix + t.Repo }

// String returns the tap name.
func (t Tap) String() string { return t.Name() }

// Qualify returns "user/repo/token".
func (t Tap) Qualify(token string) string { return t.Name() + "/" + token }

// SplitIdentifier splits a display identifier into tap and token. Bare
// identifiers belong to defaultTap.
func SplitIdentifier(identifier, defaultTap string) Token {
	if i := strings.LastIndex(identifier, "/"); i >= 0 {
		return Token{Tap: identifier[:i], Token: identifier[i+1:]}
	}
	return Token{Tap: defaultTap, Token: identifier}
}
