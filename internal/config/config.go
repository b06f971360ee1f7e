// Package config provides reading and writing of canvas-mcp configuration.
// Supports both global (~/.canvas-mcp/config.yaml) and local
// (.canvas-mcp/config.yaml) files.
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
//
// Credentials may also come from the environment (CANVAS_API_TOKEN,
// CANVAS_DOMAIN or CANVAS_HOST), optionally via a .env file in the working
// directory. A non-empty environment variable overrides the config file, so
// an MCP client's env block wins over a stale saved token.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Environment variables that override the config file when set.
const (
	EnvToken = "CANVAS_API_TOKEN"
	EnvHost  = "CANVAS_DOMAIN"
	// EnvHostAlt is accepted for compatibility with other Canvas tooling.
	EnvHostAlt = "CANVAS_HOST"
	// EnvBaseURL replaces https://{host} as the request base.
	EnvBaseURL = "CANVAS_BASE_URL"
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.canvas-mcp/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .canvas-mcp/config.yaml
	ScopeLocal
)

// Canvas holds the credential pair for the Canvas REST API.
type Canvas struct {
	Host  string `yaml:"host,omitempty"`
	Token string `yaml:"token,omitempty"`
	// BaseURL overrides https://{host} for instances behind a proxy or a
	// local test server. The /api/v1 prefix is still appended.
	BaseURL string `yaml:"base_url,omitempty"`
}

// HTTP holds outbound request options.
type HTTP struct {
	Timeout string `yaml:"timeout,omitempty"` // Go duration, e.g. "30s"
}

// Audit controls the invocation audit log.
type Audit struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultTimeout = 30 * time.Second
	MinTimeout     = time.Second
	MaxTimeout     = 10 * time.Minute
)

// Config contains configuration for canvas-mcp.
type Config struct {
	Canvas Canvas `yaml:"canvas,omitempty"`
	HTTP   HTTP   `yaml:"http,omitempty"`
	Audit  Audit  `yaml:"audit,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope

	// env holds environment overrides, never written by Save
	env Canvas
	// envHost names the variable env.Host came from
	envHost string
}

// Static returns a config holding the given credentials and defaults for
// everything else. The environment is not consulted.
func Static(host, token string) *Config {
	return &Config{Canvas: Canvas{Host: host, Token: token}}
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.HTTP.Timeout != "" {
		d, err := time.ParseDuration(c.HTTP.Timeout)
		if err != nil {
			return fmt.Errorf("%w: http.timeout %q: %v", ErrInvalidValue, c.HTTP.Timeout, err)
		}
		if d < MinTimeout || d > MaxTimeout {
			return fmt.Errorf("%w: http.timeout must be between %s and %s, got %s",
				ErrInvalidValue, MinTimeout, MaxTimeout, d)
		}
	}
	return nil
}

// pick returns the environment value when set, otherwise the file value.
func pick(env, file string) string {
	if v := strings.TrimSpace(env); v != "" {
		return v
	}
	return strings.TrimSpace(file)
}

// Host returns the Canvas host without scheme or trailing slash, or "" when
// neither the environment nor the file provides one.
func (c *Config) Host() string {
	return NormaliseHost(pick(c.env.Host, c.Canvas.Host))
}

// Token returns the Canvas API token, or "" when unset.
func (c *Config) Token() string {
	return pick(c.env.Token, c.Canvas.Token)
}

// BaseURL returns the request base override without a trailing slash, or ""
// to use https://{host}.
func (c *Config) BaseURL() string {
	return strings.TrimRight(pick(c.env.BaseURL, c.Canvas.BaseURL), "/")
}

// EnvOverride returns the name of the environment variable currently
// overriding key, or "" when the file value is in effect.
func (c *Config) EnvOverride(key string) string {
	switch key {
	case "canvas.host":
		if strings.TrimSpace(c.env.Host) != "" {
			return c.envHost
		}
	case "canvas.token":
		if strings.TrimSpace(c.env.Token) != "" {
			return EnvToken
		}
	case "canvas.base_url":
		if strings.TrimSpace(c.env.BaseURL) != "" {
			return EnvBaseURL
		}
	}
	return ""
}

// Timeout returns the per-request timeout (defaults to 30s).
func (c *Config) Timeout() time.Duration {
	if c.HTTP.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil || d < MinTimeout || d > MaxTimeout {
		return DefaultTimeout
	}
	return d
}

// AuditEnabled returns whether invocations are written to the audit log
// (defaults to true).
func (c *Config) AuditEnabled() bool {
	if c.Audit.Enabled == nil {
		return true
	}
	return *c.Audit.Enabled
}

// NormaliseHost strips a URL scheme, path suffix and surrounding whitespace
// so "https://school.instructure.com/" and "school.instructure.com" are the
// same host.
func NormaliseHost(h string) string {
	h = strings.TrimSpace(h)
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	if i := strings.Index(h, "/"); i != -1 {
		h = h[:i]
	}
	return h
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".canvas-mcp", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.canvas-mcp/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".canvas-mcp", "config.yaml")
}

// getenv is swapped by tests.
var getenv = os.Getenv

// loadDotEnv loads ./.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
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
	loadDotEnv()

	path := pathForScope(scope)
	if path == "" {
		cfg := &Config{scope: scope}
		cfg.readEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := &Config{path: path, scope: scope}
		cfg.readEnv()
		return cfg, nil
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
	cfg.readEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) readEnv() {
	c.env.Token = getenv(EnvToken)
	c.env.Host, c.envHost = getenv(EnvHost), EnvHost
	if strings.TrimSpace(c.env.Host) == "" {
		c.env.Host, c.envHost = getenv(EnvHostAlt), EnvHostAlt
	}
	c.env.BaseURL = getenv(EnvBaseURL)
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
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

// saveToPath writes configuration to a specific filesystem path. The file
// holds an API token so it is created with mode 0600.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
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
