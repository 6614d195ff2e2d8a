package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides used as CLI flag defaults.
type Env struct {
	DBPath     string `env:"BALLSORT_DB" envDefault:"~/.ballsort/scores.db"`
	Seed       int64  `env:"BALLSORT_SEED"`
	FPS        int    `env:"BALLSORT_FPS" envDefault:"60"`
	LogLevel   string `env:"BALLSORT_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"BALLSORT_LOG_FILE" envDefault:"~/.ballsort/ballsort.log"`
	SSHAddr    string `env:"BALLSORT_SSH_ADDR" envDefault:":23234"`
	Config     string `env:"BALLSORT_CONFIG"`
	Difficulty string `env:"BALLSORT_DIFFICULTY" envDefault:"normal"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the BALLSORT_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return e, fmt.Errorf("config: %w", err)
	}
	return e, nil
}
