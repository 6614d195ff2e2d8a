package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ballsort/internal/registry"
	"github.com/vovakirdan/tui-ballsort/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores, best times and recent attempts",
	Long: `Display the top 10 high scores, the best completion time per level and
the most recent attempts for a mode (default: ballsort).

Examples:
  ballsort scores
  ballsort scores ballsort_lives
  ballsort scores --recent 20
  ballsort scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent attempts to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and attempts for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "ballsort"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q", gameID)
	}
	title := registry.Title(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ballsort play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %s\n", i+1, entry.Score, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.Attempts > 0 {
		fmt.Println()
		fmt.Printf("Attempts: %d  Wins: %d (%.0f%%)  Average score: %.0f\n",
			stats.Attempts, stats.Wins, stats.WinRate()*100, stats.AvgScore)
	}

	best, err := store.BestTimes(gameID)
	if err != nil {
		return fmt.Errorf("retrieving best times: %w", err)
	}
	if len(best) > 0 {
		fmt.Println()
		fmt.Println("Best times:")
		for _, bt := range best {
			fmt.Printf("  Level %-3d %8.2fs  %d moves\n", bt.Level, bt.Duration.Seconds(), bt.Moves)
		}
	}

	if flagRecent > 0 {
		recent, err := store.RecentAttempts(gameID, flagRecent)
		if err != nil {
			return fmt.Errorf("retrieving attempts: %w", err)
		}
		fmt.Println()
		fmt.Println("Recent attempts:")
		for _, a := range recent {
			fmt.Printf("  %s  level %-3d %-20s %3d moves %8.2fs  %d\n",
				a.CreatedAt.Format("2006-01-02 15:04"), a.Level, a.Outcome, a.Moves, a.Duration.Seconds(), a.Score)
		}
	}

	fmt.Println()
	if high, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}
