// Package store defines catalogue persistence types and the Store interface.
// Implementations handle the database while consumers depend only on the
// interface.
package store

import (
	"encoding/json"
	"time"
)

// Tap is a registered namespace of casks.
type Tap struct {
	Name    string // "user/repo"
	User    string
	Repo    string
	Path    string // Directory the casks were imported from
	AddedAt int64  // Unix timestamp
}

// Cask is one installable package published by a tap.
type Cask struct {
	Tap         string
	Token       string
	Names       []string // Declared names, in declaration order
	Version     string
	Homepage    string
	Desc        string
	InstalledAt *int64 // Unix timestamp, nil if not installed
	UpdatedAt   int64
}

// Installed reports whether the cask is installed.
func (c *Cask) Installed() bool { return c.InstalledAt != nil }

// TapJSON is the API representation of a Tap.
type TapJSON struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	AddedAt string `json:"added_at"`
	Casks   int64  `json:"casks"`
}

// ToJSON converts a Tap with its cask count to its API representation.
func (t *Tap) ToJSON(casks int64) TapJSON {
	return TapJSON{
		Name:    t.Name,
		Path:    t.Path,
		AddedAt: time.Unix(t.AddedAt, 0).UTC().Format(time.RFC3339),
		Casks:   casks,
	}
}

// CaskJSON is the API representation of a Cask.
type CaskJSON struct {
	Tap         string   `json:"tap"`
	Token       string   `json:"token"`
	Names       []string `json:"names"`
	Version     string   `json:"version,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Desc        string   `json:"desc,omitempty"`
	Installed   bool     `json:"installed"`
	InstalledAt string   `json:"installed_at,omitempty"`
}

// ToJSON converts a Cask to its API representation.
func (c *Cask) ToJSON() CaskJSON {
	j := CaskJSON{
		Tap:       c.Tap,
		Token:     c.Token,
		Names:     c.Names,
		Version:   c.Version,
		Homepage:  c.Homepage,
		Desc:      c.Desc,
		Installed: c.Installed(),
	}
	if j.Names == nil {
		j.Names = []string{}
	}
	if c.InstalledAt != nil {
		j.InstalledAt = time.Unix(*c.InstalledAt, 0).UTC().Format(time.RFC3339)
	}
	return j
}

// MarshalJSON encodes a value with indentation for CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Stats summarises the catalogue.
type Stats struct {
	Taps      int64
	Casks     int64
	Names     int64 // Distinct declared names
	Installed int64
}
