package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	JWTSecret   string        `env:"AUTH_JWT_SECRET"`                         // HMAC secret for session tokens; generated in dev when empty
	SessionTTL  time.Duration `env:"AUTH_SESSION_TTL"   envDefault:"1h"`      // Session token lifetime
	Issuer      string        `env:"AUTH_ISSUER"        envDefault:"devconnect-auth"`
	TokenHeader string        `env:"AUTH_TOKEN_HEADER"  envDefault:"x-auth-token"`

	DatabaseFile        string        `env:"AUTH_DATABASE_FILE"    envDefault:"auth.db"`
	Env                 string        `env:"ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool { return c.Env == "dev" }

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("AUTH_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}
