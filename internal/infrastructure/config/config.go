package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/attendance?sslmode=disable"`
}

// RedisConfig configures the optional report cache. An empty Addr
// disables it.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
