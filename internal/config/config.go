// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Study    StudyConfig    `mapstructure:"study"    validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`

	// Login rate limiting. Not a security boundary - the limiter is
	// in-memory and per-instance - but it slows down credential stuffing
	// and mirrors the client-side throttle of the original UI.
	LoginRateLimit         int `mapstructure:"login_rate_limit"          validate:"required,gt=0"`
	LoginRateWindowSeconds int `mapstructure:"login_rate_window_seconds" validate:"required,gt=0"`
}

// StudyConfig contains settings for the study activity engine.
type StudyConfig struct {
	// SessionSize bounds how many words a single session administers.
	// Smaller eligible pools are used whole.
	SessionSize int `mapstructure:"session_size" validate:"required,gt=0"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}
