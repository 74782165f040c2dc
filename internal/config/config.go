// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvironmentProduction marks a deployment behind a serverless host, where the
// process must not bind its own listener.
const EnvironmentProduction = "production"

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Store    StoreConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port"`
	Environment        string   `mapstructure:"environment"`
	ServeSwagger       bool     `mapstructure:"serve_swagger"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	LoginRateLimit     string   `mapstructure:"login_rate_limit"` // ulule/limiter format, e.g. "10-M".
}

// SelfListen reports whether the process should bind its own HTTP listener.
func (s ServerConfig) SelfListen() bool {
	return !strings.EqualFold(s.Environment, EnvironmentProduction)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	DSN                string `mapstructure:"dsn"` // Takes precedence over the discrete fields when set.
}

// RedisConfig holds the cache Redis address. Empty disables caching.
type RedisConfig struct {
	CacheAddr string `mapstructure:"cache_addr"`
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	LatestRateTTLSec int `mapstructure:"latest_rate_ttl_sec"`
}

// StoreConfig bounds every call to the rate store.
type StoreConfig struct {
	QueryTimeoutSec int `mapstructure:"query_timeout_sec"`
}

// AuthConfig holds the admin identity and the static bearer secret.
type AuthConfig struct {
	Token         string `mapstructure:"token"`
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./internal/config")

	v.SetEnvPrefix("GOLDRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.login_rate_limit", "10-M")
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "goldrate")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("database.dsn", "")
	v.SetDefault("redis.cache_addr", "")
	v.SetDefault("cache.latest_rate_ttl_sec", 600)
	v.SetDefault("store.query_timeout_sec", 5)
	v.SetDefault("auth.token", "")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeSec <= 0 {
		cfg.Database.ConnMaxLifetimeSec = 300
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port,
			cfg.Database.Name, cfg.Database.SSLMode)
	}

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}
	if c.Server.LoginRateLimit == "" {
		errs = append(errs, fmt.Errorf("server.login_rate_limit is required"))
	}

	if c.Database.DSN == "" {
		if c.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required"))
		}
		if c.Database.Port <= 0 {
			errs = append(errs, fmt.Errorf("database.port must be positive, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required"))
		}
		if c.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
	}

	if c.Cache.LatestRateTTLSec <= 0 {
		errs = append(errs, fmt.Errorf("cache.latest_rate_ttl_sec must be positive, got %d", c.Cache.LatestRateTTLSec))
	}
	if c.Store.QueryTimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("store.query_timeout_sec must be positive, got %d", c.Store.QueryTimeoutSec))
	}

	if c.Auth.Token == "" {
		errs = append(errs, fmt.Errorf("auth.token is required (set GOLDRATE_AUTH_TOKEN)"))
	}
	if c.Auth.AdminUsername == "" {
		errs = append(errs, fmt.Errorf("auth.admin_username is required"))
	}
	if c.Auth.AdminPassword == "" {
		errs = append(errs, fmt.Errorf("auth.admin_password is required (set GOLDRATE_AUTH_ADMIN_PASSWORD)"))
	}

	return errors.Join(errs...)
}
