package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ballsort/internal/games/ballsort"
	"github.com/vovakirdan/tui-ballsort/internal/platform/tui"
	"github.com/vovakirdan/tui-ballsort/internal/registry"
	"github.com/vovakirdan/tui-ballsort/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: ballsort).

Modes:
  ballsort        - Classic: a failed level is retried from scratch
  ballsort_lives  - Lives: spend a life to retry, earn one per win

Controls:
  Left/Right, A/D  - Move the cursor
  1-9              - Pick up from / drop onto a compartment
  Enter/Space      - Pick up / drop at the cursor
  Mouse click      - Pick up / drop on the clicked compartment
  X                - Put the held ball back
  R                - Restart the level
  N                - Next level (after a win)
  L                - Use a life (lives mode, after a failure)
  P                - Pause
  Esc/B            - Back (when paused or finished)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 240 second limit, 5 lives
  normal - 180 second limit, 3 lives
  hard   - 120 second limit, 1 life
  fixed  - Normal rules, no bonus life on a win

Examples:
  ballsort play
  ballsort play --level 3
  ballsort play ballsort_lives --difficulty hard
  ballsort play --config ./my-levels.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start from")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "ballsort"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'ballsort levels' or see 'ballsort play --help')", gameID)
	}

	if _, err := ballsort.LoadCatalog().Get(flagLevel); err != nil {
		var oor *ballsort.OutOfRangeError
		if errors.As(err, &oor) {
			return fmt.Errorf("--level must be between 1 and %d", oor.Count)
		}
		return err
	}
	ballsort.SetStartLevel(flagLevel)

	logger, closeLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// The game still works without storage.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
