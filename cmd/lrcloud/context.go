package main

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"lrcloud/internal/config"
	"lrcloud/internal/history"
	"lrcloud/internal/ingest"
	"lrcloud/internal/lightroom"
	"lrcloud/internal/logging"
)

type commandContext struct {
	configFlag *string
	tokenFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	clientOnce sync.Once
	client     *lightroom.Client
	clientErr  error
}

func newCommandContext(configFlag, tokenFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		tokenFlag:  tokenFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureClient() (*lightroom.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.clientErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.clientErr = err
			return
		}
		c.client, c.clientErr = lightroom.NewFromConfig(cfg, logger.With(logging.FieldComponent, "lightroom"))
	})
	return c.client, c.clientErr
}

func (c *commandContext) orchestrator() (*ingest.Orchestrator, error) {
	client, err := c.ensureClient()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return ingest.New(client, ingest.WithLogger(logger.With(logging.FieldComponent, "ingest")))
}

// accessToken resolves the caller credential: the --token flag wins,
// then LRCLOUD_ACCESS_TOKEN or the config fallback (both folded in
// during config load).
func (c *commandContext) accessToken() (string, error) {
	if c.tokenFlag != nil {
		if token := strings.TrimSpace(*c.tokenFlag); token != "" {
			return token, nil
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Auth.AccessToken != "" {
		return cfg.Auth.AccessToken, nil
	}
	return "", errors.New("access token required: pass --token or set LRCLOUD_ACCESS_TOKEN")
}

// openHistory returns the upload ledger, or nil when history is
// disabled in the configuration.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(cfg.History.Path)
}
