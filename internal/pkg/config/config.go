package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`

	API     APIConfig
	Widget  WidgetConfig
	Session SessionConfig
	DevAPI  DevAPIConfig
}

// APIConfig locates the HealthBite backend.
type APIConfig struct {
	BaseURL string        `env:"HB_API_URL,     default=http://127.0.0.1:8000"`
	Timeout time.Duration `env:"HB_API_TIMEOUT, default=15s"`
}

type WidgetConfig struct {
	// NarrowWidth is the viewport width at or below which the widget opens
	// the full-page assistant instead of the overlay.
	NarrowWidth int `env:"HB_NARROW_WIDTH, default=768"`
}

type SessionConfig struct {
	Backend string `env:"HB_SESSION_BACKEND, default=sqlite"`
	Path    string `env:"HB_SESSION_PATH,    default=./data/session.db"`
	Redis   RedisConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// DevAPIConfig configures the development backend in cmd/devapi.
type DevAPIConfig struct {
	Port      string        `env:"PORT,         default=8000"`
	JWTSecret string        `env:"JWT_SECRET,   default=dev-secret-key-only-for-local-testing"`
	TokenTTL  time.Duration `env:"HB_TOKEN_TTL, default=30m"`
	Mongo     MongoConfig
}

type MongoConfig struct {
	// URI is optional; the in-memory user store is used when empty.
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=healthbite"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("HB_SESSION_BACKEND must be one of sqlite, redis, memory (got %q)", c.Session.Backend)
	}
	if c.Widget.NarrowWidth < 0 {
		return fmt.Errorf("HB_NARROW_WIDTH must be >= 0")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("HB_API_URL cannot be empty")
	}
	return nil
}

// IsProduction reports whether ENV selects production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
