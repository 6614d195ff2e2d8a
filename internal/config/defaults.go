package config

import (
	_ "embed"
)

//go:embed defaults/ballsort.yaml
var defaultBallSortYAML []byte

// DefaultBallSortConfig returns the default ball sort configuration.
func DefaultBallSortConfig() BallSortConfig {
	return BallSortConfig{
		Rules: DefaultRules(),
		Levels: []LevelConfig{
			{Name: "Three of a Kind", Colors: []string{"red", "blue", "yellow"}, BallsPerColor: 2, Compartments: 4},
			{Name: "Four Square", Colors: []string{"red", "blue", "yellow", "purple"}, BallsPerColor: 2, Compartments: 5},
			{Name: "Tall Stacks", Colors: []string{"red", "blue", "yellow", "purple"}, BallsPerColor: 3, Compartments: 5},
			{Name: "Counting Moves", Colors: []string{"red", "blue", "yellow", "purple", "orange"}, BallsPerColor: 3, Compartments: 6, MoveLimit: 30},
			{Name: "Full Spectrum", Colors: []string{"red", "blue", "yellow", "purple", "orange", "cyan"}, BallsPerColor: 4, Compartments: 7, MoveLimit: 40},
		},
	}
}

// DefaultRules returns the default rules.
func DefaultRules() RulesConfig {
	return RulesConfig{
		MaxCapacity:      5,
		TimeLimitSeconds: 180,
		StartingLives:    3,
		WinBonusLives:    1,
	}
}
