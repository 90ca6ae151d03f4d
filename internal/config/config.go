// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"eaglebank/pkg/db"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig holds all application-wide configuration, read from the
// environment with defaults suitable for local development.
type AppConfig struct {
	Env        string        `env:"APP_ENV" env-default:"local"`
	ServerPort string        `env:"SERVER_PORT" env-default:"8080"`
	JWTSecret  string        `env:"JWT_SECRET" env-default:"local-dev-secret"`
	JWTTTL     time.Duration `env:"JWT_TTL" env-default:"24h"`
	DB         db.Config
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return &cfg, nil
}
