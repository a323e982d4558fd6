package config

// Config holds all application configuration.
// It is built once at startup and injected into every component that needs
// it; nothing reads configuration from ambient global state after load.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RateLimit is the number of requests allowed per RateLimitWindowSeconds
	// for each client IP on the unauthenticated auth endpoints.
	RateLimit              int `mapstructure:"rate_limit"                validate:"required,gt=0"`
	RateLimitWindowSeconds int `mapstructure:"rate_limit_window_seconds" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// Access and refresh tokens are signed with distinct secrets so that a token
// of one kind can never verify as the other.
type AuthConfig struct {
	AccessTokenSecret           string `mapstructure:"access_token_secret"            validate:"required,min=32"`
	RefreshTokenSecret          string `mapstructure:"refresh_token_secret"           validate:"required,min=32,nefield=AccessTokenSecret"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"omitempty,gte=4,lte=31"`
}
