// config_keys.go provides key-value access to configuration settings for the
// CLI and MCP, where settings are addressed by dotted keys such as
// "remote.timeout". Pointer fields distinguish "not set" from an explicit
// zero value so defaults only apply when the user has not set a key.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"catalog.default_tap",
		"remote.enabled", "remote.user", "remote.path", "remote.extension",
		"remote.api_url", "remote.timeout",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "catalog.default_tap":
		return c.DefaultTap(), nil
	case "remote.enabled":
		return strconv.FormatBool(c.RemoteEnabled()), nil
	case "remote.user":
		return c.RemoteUser(), nil
	case "remote.path":
		return c.RemotePath(), nil
	case "remote.extension":
		return c.RemoteExtension(), nil
	case "remote.api_url":
		return c.RemoteAPIURL(), nil
	case "remote.timeout":
		return c.RemoteTimeout().String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. The result is validated; on
// error the config is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "author.name":
		next.Author.Name = value
	case "author.email":
		next.Author.Email = value
	case "catalog.default_tap":
		next.Catalog.DefaultTap = &value
	case "remote.enabled":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: remote.enabled must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		next.Remote.Enabled = &b
	case "remote.user":
		next.Remote.User = &value
	case "remote.path":
		next.Remote.Path = &value
	case "remote.extension":
		v := strings.TrimPrefix(value, ".")
		next.Remote.Extension = &v
	case "remote.api_url":
		v := strings.TrimSuffix(value, "/")
		next.Remote.APIURL = &v
	case "remote.timeout":
		next.Remote.Timeout = &value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "catalog.default_tap":
		return c.Catalog.DefaultTap != nil
	case "remote.enabled":
		return c.Remote.Enabled != nil
	case "remote.user":
		return c.Remote.User != nil
	case "remote.path":
		return c.Remote.Path != nil
	case "remote.extension":
		return c.Remote.Extension != nil
	case "remote.api_url":
		return c.Remote.APIURL != nil
	case "remote.timeout":
		return c.Remote.Timeout != nil
	default:
		return false
	}
}
