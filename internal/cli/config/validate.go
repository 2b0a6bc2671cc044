package config

import (
	"fmt"

	"github.com/leapstack-labs/findsqlite/internal/logging"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be zero or positive, got %d", c.Workers)
	}
	if _, _, err := logging.ParseLevel(c.Log); err != nil {
		return err
	}
	if err := logging.ValidateFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}
