package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"bunkerlab/internal/config"
	"bunkerlab/internal/logging"
	"bunkerlab/internal/pipeline"
	"bunkerlab/internal/soffice"
	"bunkerlab/internal/staging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	// newConverter is swapped out by tests.
	newConverter func(cfg *config.Config) (pipeline.Converter, error)
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		newConverter: func(cfg *config.Config) (pipeline.Converter, error) {
			return soffice.New(cfg.Soffice.Binary, cfg.Soffice.ConvertTimeout)
		},
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
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			OutputPaths: []string{
				"stderr",
				filepath.Join(cfg.Paths.LogDir, "bunkerlab.log"),
			},
		})
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger, nil
}

// newPipeline wires the generation pipeline and sweeps abandoned scratch
// directories left behind by earlier crashes.
func (c *commandContext) newPipeline() (*pipeline.Pipeline, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Staging.StaleAfterHours > 0 {
		maxAge := time.Duration(cfg.Staging.StaleAfterHours) * time.Hour
		staging.SweepStale(cfg.Paths.StagingDir, maxAge, logger)
	}

	converter, err := c.newConverter(cfg)
	if err != nil {
		return nil, nil, err
	}
	p, err := pipeline.New(cfg.Paths.StagingDir, converter, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
