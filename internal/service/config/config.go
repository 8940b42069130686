// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"skinshop/internal/service/dsn"
)

const (
	SessionStateless = "stateless"
	SessionSingle    = "single"

	minSecretLength = 32
)

// Database is the part of the configuration the migrator needs.
type Database struct {
	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPass         string `envconfig:"DB_PASS"`
	DBName         string `envconfig:"DB_NAME" default:"skinshop"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	DBMaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"50"`
}

type Config struct {
	BackendURL  string `envconfig:"BACKEND_URL" default:":8080"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"*"`

	Database

	// JWTSecret is the HS256 signing key. Never log it.
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	StartingCoins     int64  `envconfig:"STARTING_COINS" default:"0"`
	RegisterAutoLogin bool   `envconfig:"REGISTER_AUTO_LOGIN" default:"true"`
	MaxGrantAmount    int64  `envconfig:"MAX_GRANT_AMOUNT" default:"1000000"`
	SessionPolicy     string `envconfig:"SESSION_POLICY" default:"stateless"`

	RedisEndpoint string `envconfig:"REDIS_ENDPOINT"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	AccessLogPath  string        `envconfig:"ACCESS_LOG_PATH" default:"stdout"`
	DBLogPath      string        `envconfig:"DB_LOG_PATH" default:"stdout"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadDatabase() (*Database, error) {
	_ = godotenv.Load()

	var db Database
	if err := envconfig.Process("", &db); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &db, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	if c.StartingCoins < 0 {
		return fmt.Errorf("config: STARTING_COINS must not be negative")
	}
	if c.MaxGrantAmount <= 0 {
		return fmt.Errorf("config: MAX_GRANT_AMOUNT must be positive")
	}
	switch c.SessionPolicy {
	case SessionStateless:
	case SessionSingle:
		if c.RedisEndpoint == "" {
			return fmt.Errorf("config: SESSION_POLICY=single requires REDIS_ENDPOINT")
		}
	default:
		return fmt.Errorf("config: unknown SESSION_POLICY %q", c.SessionPolicy)
	}
	return nil
}

func (c *Database) DSN() string {
	return dsn.Build(c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}
