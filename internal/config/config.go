package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultPort            = 8080
	DefaultCommitLimit     = 100
	MinCommitLimit         = 10
	MaxCommitLimit         = 500
	DefaultRefreshSeconds  = 300
	DefaultCacheTTLSeconds = 60

	configFileName = ".branchvista.yaml"
)

// Config holds everything the server needs. Values come from the YAML file,
// then environment variables, then flags in main — in increasing precedence.
type Config struct {
	Port            int    `yaml:"port"`
	RepoURL         string `yaml:"repo_url"`
	Token           string `yaml:"token"`
	CommitLimit     int    `yaml:"commit_limit"`
	RefreshSeconds  int    `yaml:"refresh_seconds"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// RefreshPeriod is how often the server re-fetches and re-analyzes.
func (c *Config) RefreshPeriod() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// CacheTTL is how long GitHub API responses are reused.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// DefaultPath returns the config file location in the user's home directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, configFileName), nil
}

// Load reads the config file at path (or the default location when path is
// empty), applies environment overrides, and validates the result. A missing
// file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:            DefaultPort,
		CommitLimit:     DefaultCommitLimit,
		RefreshSeconds:  DefaultRefreshSeconds,
		CacheTTLSeconds: DefaultCacheTTLSeconds,
	}

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.Token = token
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}
	if repoURL := os.Getenv("REPO_URL"); repoURL != "" {
		cfg.RepoURL = repoURL
	}
}

// Validate checks field ranges. The commit limit bounds match the fetch
// window the GitHub provider is designed for.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.CommitLimit < MinCommitLimit || c.CommitLimit > MaxCommitLimit {
		return fmt.Errorf("%w: commit_limit must be between %d and %d, got %d",
			ErrInvalidConfig, MinCommitLimit, MaxCommitLimit, c.CommitLimit)
	}
	if c.RefreshSeconds <= 0 {
		return fmt.Errorf("%w: refresh_seconds must be positive", ErrInvalidConfig)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("%w: cache_ttl_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
