package testkit

import (
	"goldrateservice/internal/config"
)

// Credentials used by AppConfig.
const (
	TestToken         = "integration-secret"
	TestAdminUsername = "admin"
	TestAdminPassword = "integration-password"
)

// AppConfig returns a service configuration pointing at the suite's
// containers. The listener port is 0 because tests drive the handler directly.
func (s *Suite) AppConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
			LoginRateLimit:     "1000-M",
		},
		Database: config.DatabaseConfig{
			DSN:                s.PostgresDSN(),
			MaxOpenConns:       5,
			MaxIdleConns:       2,
			ConnMaxLifetimeSec: 60,
		},
		Redis: config.RedisConfig{CacheAddr: s.RedisAddr()},
		Cache: config.CacheConfig{LatestRateTTLSec: 600},
		Store: config.StoreConfig{QueryTimeoutSec: 5},
		Auth: config.AuthConfig{
			Token:         TestToken,
			AdminUsername: TestAdminUsername,
			AdminPassword: TestAdminPassword,
		},
	}
}
