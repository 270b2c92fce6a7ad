package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment.
type Config struct {
	APIURL   string `env:"DEVCONNECT_API_URL"   envDefault:"http://localhost:8080"`
	StateDir string `env:"DEVCONNECT_STATE_DIR"`
	LogLevel string `env:"LOG_LEVEL"            envDefault:"warn"`
}

// LoadConfig parses the environment. StateDir defaults to ~/.devconnect.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".devconnect")
	}
	return cfg, nil
}
