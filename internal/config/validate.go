package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive (got %v)", c.Auth.SessionTTL)
	}

	if err := c.Jobs.validate(); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}

	return nil
}

func (j *JobsConfig) validate() error {
	if j.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", j.Workers)
	}
	if j.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0 (got %d)", j.QueueSize)
	}
	if j.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive (got %v)", j.SweepInterval)
	}
	if j.ExportsDir == "" {
		return fmt.Errorf("exports_dir is required")
	}
	return nil
}
