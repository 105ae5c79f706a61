// Package config loads client configuration from the environment, with an
// optional .env file for development setups.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the field client needs to talk to the API.
type Config struct {
	// BaseURL is the root of the Wildlife Tracker API.
	BaseURL string `env:"WILDTRACK_API_URL,default=http://localhost:8000"`

	// RequestTimeout bounds ordinary API calls. Zero means no timeout,
	// matching the browser client this replaces; only geolocation capture
	// carries its own deadline.
	RequestTimeout time.Duration `env:"WILDTRACK_REQUEST_TIMEOUT,default=0"`

	// TokenPath is where the bearer token is persisted between runs.
	// Empty selects <user config dir>/wildtrack/token.
	TokenPath string `env:"WILDTRACK_TOKEN_PATH"`

	// StyleFile optionally overrides the embedded marker style table.
	StyleFile string `env:"WILDTRACK_STYLE_FILE"`

	// RequestsPerSecond throttles outgoing API calls. Zero disables the
	// limiter.
	RequestsPerSecond float64 `env:"WILDTRACK_REQUESTS_PER_SECOND,default=0"`

	LogLevel string `env:"WILDTRACK_LOG_LEVEL,default=info"`
	LogJSON  bool   `env:"WILDTRACK_LOG_JSON,default=false"`
}

// Load reads an optional .env file from the working directory, then decodes
// the WILDTRACK_* environment variables.
func Load() (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}

	if cfg.TokenPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolve user config dir: %w", err)
		}
		cfg.TokenPath = filepath.Join(dir, "wildtrack", "token")
	}

	return cfg, nil
}
