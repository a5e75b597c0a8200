// Package config provides reading and writing of caskfind configuration.
// Supports both global (~/.caskfind/config.yaml) and local (.caskfind/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/caskfind/internal/validate"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.caskfind/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .caskfind/config.yaml
	ScopeLocal
)

// Author is recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Catalog holds catalogue display options.
type Catalog struct {
	DefaultTap *string `yaml:"default_tap,omitempty"`
}

// Remote holds code search options. The API token is read from the
// environment and never stored here.
type Remote struct {
	Enabled   *bool   `yaml:"enabled,omitempty"`
	User      *string `yaml:"user,omitempty"`
	Path      *string `yaml:"path,omitempty"`
	Extension *string `yaml:"extension,omitempty"`
	APIURL    *string `yaml:"api_url,omitempty"`
	Timeout   *string `yaml:"timeout,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultTap             = "caskroom/cask"
	DefaultRemoteUser      = "caskroom"
	DefaultRemotePath      = "Casks"
	DefaultRemoteExtension = "rb"
	DefaultRemoteAPIURL    = "https://api.github.com"
	DefaultRemoteTimeout   = 10 * time.Second
)

// Validation bounds for the remote timeout.
const (
	MinRemoteTimeout = 100 * time.Millisecond
	MaxRemoteTimeout = 5 * time.Minute
)

// Config contains configuration for caskfind.
type Config struct {
	Author  Author  `yaml:"author,omitempty"`
	Catalog Catalog `yaml:"catalog,omitempty"`
	Remote  Remote  `yaml:"remote,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Catalog.DefaultTap != nil {
		if _, err := validate.Tap(*c.Catalog.DefaultTap); err != nil {
			return fmt.Errorf("%w: catalog.default_tap: %w", ErrInvalidValue, err)
		}
	}
	if c.Remote.User != nil && *c.Remote.User == "" {
		return fmt.Errorf("%w: remote.user must not be empty", ErrInvalidValue)
	}
	if c.Remote.APIURL != nil {
		u, err := url.Parse(*c.Remote.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: remote.api_url must be an http(s) URL, got %q",
				ErrInvalidValue, *c.Remote.APIURL)
		}
	}
	if c.Remote.Timeout != nil {
		d, err := time.ParseDuration(*c.Remote.Timeout)
		if err != nil {
			return fmt.Errorf("%w: remote.timeout: %w", ErrInvalidValue, err)
		}
		if d < MinRemoteTimeout || d > MaxRemoteTimeout {
			return fmt.Errorf("%w: remote.timeout must be between %s and %s, got %s",
				ErrInvalidValue, MinRemoteTimeout, MaxRemoteTimeout, d)
		}
	}
	return nil
}

// DefaultTap returns the tap whose casks are listed without qualification
// (defaults to caskroom/cask).
func (c *Config) DefaultTap() string {
	if c.Catalog.DefaultTap == nil {
		return DefaultTap
	}
	// Validated on load and set.
	name, _ := validate.Tap(*c.Catalog.DefaultTap)
	return name
}

// RemoteEnabled returns whether search queries the remote code search
// (defaults to true).
func (c *Config) RemoteEnabled() bool {
	if c.Remote.Enabled == nil {
		return true
	}
	return *c.Remote.Enabled
}

// RemoteUser returns the organisation the code search is scoped to.
func (c *Config) RemoteUser() string {
	return orDefault(c.Remote.User, DefaultRemoteUser)
}

// RemotePath returns the directory cask files live in.
func (c *Config) RemotePath() string {
	return orDefault(c.Remote.Path, DefaultRemotePath)
}

// RemoteExtension returns the cask file extension, without the dot.
func (c *Config) RemoteExtension() string {
	return orDefault(c.Remote.Extension, DefaultRemoteExtension)
}

// RemoteAPIURL returns the code search API base URL.
func (c *Config) RemoteAPIURL() string {
	return orDefault(c.Remote.APIURL, DefaultRemoteAPIURL)
}

// RemoteTimeout returns the timeout for a remote search (defaults to 10s).
func (c *Config) RemoteTimeout() time.Duration {
	if c.Remote.Timeout == nil {
		return DefaultRemoteTimeout
	}
	d, err := time.ParseDuration(*c.Remote.Timeout)
	if err != nil {
		return DefaultRemoteTimeout
	}
	return d
}

func orDefault(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".caskfind", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.caskfind/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".caskfind", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to path, creating parent directories.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
