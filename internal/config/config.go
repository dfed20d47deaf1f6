package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	MetricsEnabled         bool   `mapstructure:"metrics_enabled"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                  string `mapstructure:"jwt_secret" validate:"required,min=32"`
	AccessTokenLifetimeMinutes int    `mapstructure:"access_token_lifetime_minutes" validate:"gt=0"`
	RefreshTokenLifetimeDays   int    `mapstructure:"refresh_token_lifetime_days" validate:"gt=0"`
	// ClockSkewSeconds is the leeway applied to exp/iat checks.
	ClockSkewSeconds int `mapstructure:"clock_skew_seconds" validate:"gte=0,lte=300"`
	BcryptCost       int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	// LoginRatePerMinute and LoginBurst bound login attempts per client address.
	LoginRatePerMinute int `mapstructure:"login_rate_per_minute" validate:"gt=0"`
	LoginBurst         int `mapstructure:"login_burst" validate:"gt=0"`
}

// CacheConfig selects and configures the reference-data cache.
type CacheConfig struct {
	Driver        string `mapstructure:"driver" validate:"required,oneof=memory redis"`
	TTLSeconds    int    `mapstructure:"ttl_seconds" validate:"gt=0"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
}
