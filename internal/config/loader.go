package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "ballsort.yaml"

// LoadBallSort loads ball sort configuration.
// Search order: customPath -> ~/.ballsort/configs/ballsort.yaml -> ./configs/ballsort.yaml -> embedded default
//
// Fields a file leaves out keep their default values; a file that lists
// levels replaces the whole catalog.
func LoadBallSort(customPath string) (BallSortConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BallSortConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return BallSortConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBallSortYAML)
	if err != nil {
		return DefaultBallSortConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults and checks the rules.
func parse(data []byte) (BallSortConfig, error) {
	cfg := DefaultBallSortConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects rules that cannot produce a playable session.
func (r RulesConfig) Validate() error {
	switch {
	case r.MaxCapacity < 1:
		return fmt.Errorf("max_capacity must be at least 1, got %d", r.MaxCapacity)
	case r.TimeLimitSeconds < 1:
		return fmt.Errorf("time_limit_seconds must be at least 1, got %d", r.TimeLimitSeconds)
	case r.StartingLives < 0:
		return fmt.Errorf("starting_lives must not be negative, got %d", r.StartingLives)
	case r.WinBonusLives < 0:
		return fmt.Errorf("win_bonus_lives must not be negative, got %d", r.WinBonusLives)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ballsort", "configs", filename)
}
