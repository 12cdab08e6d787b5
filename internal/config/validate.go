package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCheckin(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.CSVDir == "" {
		return errors.New("config: csv_dir is required")
	}
	if c.Paths.DBDir == "" {
		return errors.New("config: db_dir is required")
	}
	return nil
}

func (c *Config) validateCheckin() error {
	if c.Checkin.DefaultLimit > c.Checkin.MaxLimit {
		return fmt.Errorf("config: checkin default_limit %d exceeds max_limit %d",
			c.Checkin.DefaultLimit, c.Checkin.MaxLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unsupported log level %q", c.Logging.Level)
	}
	return nil
}
