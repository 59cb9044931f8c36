package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable for the
// current environment. Development and test run with local defaults, so
// only production and CI enforce credentials.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is not set")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		errors = append(errors, "database host, port and name are required")
	}
	if cfg.RedisHost == "" || cfg.RedisPort == "" {
		if cfg.RedisURL == "" {
			errors = append(errors, "redis host/port or redis URL is required")
		}
	}

	env := GetEnvironment()
	if env == Production || env == CI {
		if cfg.DBPassword == "" {
			errors = append(errors, fmt.Sprintf("database password is required in %s environment", env))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
