package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML schema. All values should be supplied via YAML; we avoid hard-coded defaults.
// Minimal validation occurs in Validate().
type Config struct {
	Version int       `yaml:"version"`
	Proxy   Proxy     `yaml:"proxy"`
	Network Network   `yaml:"network"`
	Cache   Cache     `yaml:"cache"`
	Logging Logging   `yaml:"logging"`
	UI      UIOptions `yaml:"ui"`
}

type Proxy struct {
	// BaseURL is the root of the serving proxy, e.g. https://proxy.example.com
	BaseURL string `yaml:"base_url"`
	// TokenEnv names the environment variable holding the access token.
	// An empty variable suppresses all API calls.
	TokenEnv string `yaml:"token_env"`
	// AdminView renders the private admin variant of the hub regardless of
	// the public flag, and unlocks the settings write path.
	AdminView bool `yaml:"admin_view"`
}

type Network struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

type Cache struct {
	Enabled  bool   `yaml:"enabled"`
	DataRoot string `yaml:"data_root"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // human|json
}

type UIOptions struct {
	// Theme selects a style preset: dark | light
	Theme string `yaml:"theme"`
	// RefreshMinutes re-fetches the model list periodically while the hub is
	// open. If 0, data is fetched once on startup.
	RefreshMinutes int `yaml:"refresh_minutes"`
	// Compact hides the capability columns in the card list for narrow terminals.
	Compact bool `yaml:"compact"`
}

// Load reads, parses, expands, and validates a YAML config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	expanded, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	// Expand ${ENV} placeholders before unmarshalling
	b = []byte(os.ExpandEnv(string(b)))
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.expandPaths(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultPath returns the conventional config location, honoring MODELHUB_CONFIG.
func DefaultPath() string {
	if env := os.Getenv("MODELHUB_CONFIG"); env != "" {
		return env
	}
	h, err := os.UserHomeDir()
	if err != nil || h == "" {
		return "config.yml"
	}
	return filepath.Join(h, ".config", "modelhub", "config.yml")
}

func (c *Config) expandPaths() error {
	var err error
	if c.Cache.DataRoot, err = expandTilde(c.Cache.DataRoot); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if c.Proxy.BaseURL == "" {
		return errors.New("proxy.base_url is required")
	}
	u, err := url.Parse(c.Proxy.BaseURL)
	if err != nil {
		return fmt.Errorf("proxy.base_url invalid: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("proxy.base_url must be http(s), got %q", c.Proxy.BaseURL)
	}
	if c.Network.TimeoutSeconds < 0 {
		return errors.New("network.timeout_seconds must be >= 0")
	}
	if c.Cache.Enabled && c.Cache.DataRoot == "" {
		return errors.New("cache.data_root is required when cache.enabled is true")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level invalid: %s", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "human", "json":
		// ok
	default:
		return fmt.Errorf("logging.format invalid: %s", c.Logging.Format)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "", "dark", "light":
		// ok
	default:
		return fmt.Errorf("ui.theme invalid: %s", c.UI.Theme)
	}
	if c.UI.RefreshMinutes < 0 {
		return errors.New("ui.refresh_minutes must be >= 0")
	}
	return nil
}

// Token resolves the access token from the configured environment variable.
// An empty result means no API calls should be attempted.
func (c *Config) Token() string {
	env := strings.TrimSpace(c.Proxy.TokenEnv)
	if env == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(env))
}

func expandTilde(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p[0] != '~' {
		return p, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return h, nil
	}
	return filepath.Join(h, p[2:]), nil
}
