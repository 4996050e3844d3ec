package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file; both override the defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Missing config file is fine; env vars and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// HELLENIKA_SERVER_PORT maps to server.port, etc.
	v.SetEnvPrefix("HELLENIKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults establishes the baseline configuration values.
// JWT secret and database URL have no safe default and must be provided.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Registered as empty so AutomaticEnv can populate them; validation
	// rejects the empty values if nothing is provided.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("auth.bcrypt_cost", 0)                        // 0 means bcrypt.DefaultCost
	v.SetDefault("auth.login_rate_limit", 5)
	v.SetDefault("auth.login_rate_window_seconds", 60)

	v.SetDefault("study.session_size", 10)

	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)
}
