package configs

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultAPIURL    = "https://api.github.com"
	DefaultUserAgent = "env-to-github-secrets"
	DefaultTimeout   = 30 * time.Second

	DefaultKeyringService = "env-to-github-secrets"
	DefaultKeyringAccount = "github-pat"

	// APIURLEnv overrides github.api_url, e.g. for GitHub Enterprise Server.
	APIURLEnv = "GITHUB_API_URL"
)

type Config struct {
	GitHub  GitHubConfig  `toml:"github"`
	Keyring KeyringConfig `toml:"keyring"`
}

type GitHubConfig struct {
	APIURL    string `toml:"api_url"`
	UserAgent string `toml:"user_agent"`
	Timeout   string `toml:"timeout"`
}

type KeyringConfig struct {
	Service  string   `toml:"service"`
	Account  string   `toml:"account"`
	Backends []string `toml:"backends"`
	FileDir  string   `toml:"file_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:    DefaultAPIURL,
			UserAgent: DefaultUserAgent,
			Timeout:   DefaultTimeout.String(),
		},
		Keyring: KeyringConfig{
			Service: DefaultKeyringService,
			Account: DefaultKeyringAccount,
		},
	}
}

// LoadConfig loads the configuration at configPath on top of the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := LoadTOML(configPath, config); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", configPath, err)
		}
	}

	if apiURL := strings.TrimSpace(os.Getenv(APIURLEnv)); apiURL != "" {
		config.GitHub.APIURL = apiURL
	}

	config.fillDefaults()

	if _, err := config.RequestTimeout(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes config to configPath.
func SaveConfig(configPath string, config *Config) error {
	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// RequestTimeout parses github.timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.GitHub.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.GitHub.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid github.timeout %q: %w", c.GitHub.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid github.timeout %q: must not be negative", c.GitHub.Timeout)
	}
	return d, nil
}

func (c *Config) fillDefaults() {
	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = DefaultAPIURL
	}
	if c.GitHub.UserAgent == "" {
		c.GitHub.UserAgent = DefaultUserAgent
	}
	if c.Keyring.Service == "" {
		c.Keyring.Service = DefaultKeyringService
	}
	if c.Keyring.Account == "" {
		c.Keyring.Account = DefaultKeyringAccount
	}
}
