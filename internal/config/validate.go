package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateService(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateHistory()
}

func (c *Config) validateService() error {
	if c.Service.BaseURL == "" {
		return errors.New("service.base_url must be set")
	}
	if !strings.HasPrefix(c.Service.BaseURL, "http://") && !strings.HasPrefix(c.Service.BaseURL, "https://") {
		return fmt.Errorf("service.base_url must be an http(s) origin, got %q", c.Service.BaseURL)
	}
	if c.Service.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/lrcloud/config.toml"
		}
		return fmt.Errorf("service.api_key is required. Set LRCLOUD_API_KEY env var or edit %s (create with 'lrcloud config init')", defaultPath)
	}
	if c.Service.TimeoutSeconds <= 0 {
		return errors.New("service.timeout_seconds must be positive")
	}
	if c.Service.UploadTimeoutSeconds <= 0 {
		return errors.New("service.upload_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history is enabled")
	}
	return nil
}
