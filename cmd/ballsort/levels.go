package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ballsort/internal/games/ballsort"
	"github.com/vovakirdan/tui-ballsort/internal/platform/tui"
	"github.com/vovakirdan/tui-ballsort/internal/registry"
	"github.com/vovakirdan/tui-ballsort/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List modes, rules and levels",
	Long: `Shows the registered modes, the rules for the selected difficulty and
every level in the catalog, with your best time where one is recorded.

Examples:
  ballsort levels
  ballsort levels --difficulty hard
  ballsort levels --config ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	stats := gameStats()

	fmt.Println("Modes:")
	for _, g := range registry.List() {
		line := fmt.Sprintf("  %-16s %-20s", g.ID, g.Title)
		if st, ok := stats[g.ID]; ok {
			line += fmt.Sprintf(" %d played, %d won", st.Attempts, st.Wins)
		}
		fmt.Println(line)
	}
	fmt.Println()

	rules := ballsort.LoadRules(true)
	fmt.Printf("Rules (%s):\n", flagDifficulty)
	fmt.Printf("  Time limit:      %s\n", rules.TimeLimit)
	fmt.Printf("  Capacity:        %d balls per compartment\n", rules.Capacity)
	fmt.Printf("  Lives:           %d to start, +%d per win (lives mode)\n", rules.StartingLives, rules.WinBonusLives)
	fmt.Println()

	best := bestTimes("ballsort")

	fmt.Println("Levels:")
	for _, lvl := range ballsort.LoadCatalog().Levels() {
		fmt.Printf("  %s\n", tui.LevelLine(lvl, best[lvl.Number]))
	}
	return nil
}

// bestTimes reads the fastest win per level, or nothing if the database
// is unavailable.
func bestTimes(gameID string) map[int]time.Duration {
	best := make(map[int]time.Duration)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return best
	}
	defer store.Close()

	times, err := store.BestTimes(gameID)
	if err != nil {
		return best
	}
	for _, bt := range times {
		best[bt.Level] = bt.Duration
	}
	return best
}

// gameStats reads per-mode attempt counts, or nothing if the database
// is unavailable.
func gameStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return nil
	}
	return stats
}
