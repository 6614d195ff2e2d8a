// Package config provides YAML-based rules and level loading, difficulty
// presets and environment overrides for the ball sort game.
package config

import "time"

// BallSortConfig contains all configuration for the ball sort game.
type BallSortConfig struct {
	Rules  RulesConfig   `yaml:"rules"`
	Levels []LevelConfig `yaml:"levels"`
}

// RulesConfig defines session-wide rules.
type RulesConfig struct {
	MaxCapacity      int `yaml:"max_capacity"`       // Balls per compartment
	TimeLimitSeconds int `yaml:"time_limit_seconds"` // Attempt time limit
	StartingLives    int `yaml:"starting_lives"`     // Lives at start (lives mode)
	WinBonusLives    int `yaml:"win_bonus_lives"`    // Lives awarded per win (lives mode)
}

// TimeLimit returns the attempt time limit as a duration.
func (r RulesConfig) TimeLimit() time.Duration {
	return time.Duration(r.TimeLimitSeconds) * time.Second
}

// LevelConfig defines one level. Colors are palette names
// (red, blue, yellow, purple, orange, cyan, green).
type LevelConfig struct {
	Name          string   `yaml:"name"`
	Colors        []string `yaml:"colors"`
	BallsPerColor int      `yaml:"balls_per_color"`
	Compartments  int      `yaml:"compartments"`
	MoveLimit     int      `yaml:"move_limit"` // 0 = unlimited
}
