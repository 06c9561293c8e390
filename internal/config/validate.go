package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return errors.New("paths.staging_dir is required")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir is required")
	}
	if c.Soffice.ConvertTimeout <= 0 {
		return fmt.Errorf("soffice.convert_timeout must be positive, got %d", c.Soffice.ConvertTimeout)
	}
	if c.Staging.StaleAfterHours < 0 {
		return fmt.Errorf("staging.stale_after_hours must not be negative, got %d", c.Staging.StaleAfterHours)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
