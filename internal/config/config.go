package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Service contains the remote catalog service connection settings.
type Service struct {
	// BaseURL is the fixed service origin every request targets.
	BaseURL string `toml:"base_url"`
	// APIKey is the integration key sent as X-API-Key on every call and
	// used as the publish-info service identifier on project albums.
	APIKey string `toml:"api_key"`
	// TimeoutSeconds bounds metadata requests. Default: 30.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// UploadTimeoutSeconds bounds binary master uploads. Default: 300.
	UploadTimeoutSeconds int `toml:"upload_timeout_seconds"`
}

// Auth contains caller credentials. The access token may also be supplied
// per invocation via --token or LRCLOUD_ACCESS_TOKEN; the config value is
// only a convenience fallback and is never written back.
type Auth struct {
	AccessToken string `toml:"access_token"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	LogDir string `toml:"log_dir"`
}

// History contains configuration for the local upload ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for lrcloud.
type Config struct {
	Service Service `toml:"service"`
	Auth    Auth    `toml:"auth"`
	Logging Logging `toml:"logging"`
	History History `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/lrcloud/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file actually existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Service.BaseURL = strings.TrimRight(strings.TrimSpace(c.Service.BaseURL), "/")
	c.Service.APIKey = strings.TrimSpace(c.Service.APIKey)
	c.Auth.AccessToken = strings.TrimSpace(c.Auth.AccessToken)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Service.APIKey == "" {
		c.Service.APIKey = strings.TrimSpace(os.Getenv("LRCLOUD_API_KEY"))
	}
	if c.Auth.AccessToken == "" {
		c.Auth.AccessToken = strings.TrimSpace(os.Getenv("LRCLOUD_ACCESS_TOKEN"))
	}

	if c.Logging.LogDir != "" {
		expanded, err := ExpandPath(c.Logging.LogDir)
		if err != nil {
			return err
		}
		c.Logging.LogDir = expanded
	}
	if c.History.Path != "" {
		expanded, err := ExpandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = expanded
	}
	return nil
}

// EnsureDirectories creates the directories the configuration points at.
func (c *Config) EnsureDirectories() error {
	dirs := make([]string, 0, 2)
	if c.Logging.LogDir != "" {
		dirs = append(dirs, c.Logging.LogDir)
	}
	if c.History.Enabled && c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Timeout returns the metadata request deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

// UploadTimeout returns the binary upload deadline.
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.Service.UploadTimeoutSeconds) * time.Second
}

// ExpandPath resolves ~ prefixes and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path must not be empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}

// Sample returns the embedded sample configuration file contents.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to the given path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
