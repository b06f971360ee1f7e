// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the CLI config command, where settings are addressed
// by dotted keys (e.g., "canvas.host").

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
		"canvas.host", "canvas.token", "canvas.base_url",
		"http.timeout",
		"audit.enabled",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "canvas.host":
		return c.Host(), nil
	case "canvas.token":
		return c.Token(), nil
	case "canvas.base_url":
		return c.BaseURL(), nil
	case "http.timeout":
		return c.Timeout().String(), nil
	case "audit.enabled":
		return strconv.FormatBool(c.AuditEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "canvas.host":
		c.Canvas.Host = NormaliseHost(value)
	case "canvas.token":
		c.Canvas.Token = strings.TrimSpace(value)
	case "canvas.base_url":
		v := strings.TrimSpace(value)
		if v != "" && !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("%w: canvas.base_url must start with http:// or https://, got %q", ErrInvalidValue, value)
		}
		c.Canvas.BaseURL = v
	case "http.timeout":
		prev := c.HTTP.Timeout
		c.HTTP.Timeout = value
		if err := c.Validate(); err != nil {
			c.HTTP.Timeout = prev
			return err
		}
	case "audit.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: audit.enabled must be true or false, got %q", ErrInvalidValue, value)
		}
		c.Audit.Enabled = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// Masked returns the value of key suitable for display, hiding all but the
// last four characters of the token.
func (c *Config) Masked(key string) (string, error) {
	v, err := c.Get(key)
	if err != nil {
		return "", err
	}
	return mask(key, v), nil
}

// MaskedFile is Masked for the value held by the config file itself,
// ignoring any environment override.
func (c *Config) MaskedFile(key string) (string, error) {
	file := &Config{Canvas: c.Canvas, HTTP: c.HTTP, Audit: c.Audit}
	return file.Masked(key)
}

func mask(key, v string) string {
	if key != "canvas.token" || v == "" {
		return v
	}
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", 8) + v[len(v)-4:]
}
