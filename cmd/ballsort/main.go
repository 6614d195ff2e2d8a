// ballsort is a terminal ball sort puzzle: sort the colored balls so every
// compartment holds a single color, against the clock.
//
// Usage:
//
//	ballsort play [mode]     - Play a mode (ballsort, ballsort_lives)
//	ballsort menu            - Pick a mode and level interactively
//	ballsort levels          - List the level catalog
//	ballsort scores [mode]   - Show high scores, best times and recent attempts
//	ballsort serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for a reproducible deal
//	--db <path>           - Set database path (default: ~/.ballsort/scores.db)
//	--config <path>       - Custom rules and levels YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//
// Every flag default can be overridden with a BALLSORT_* environment variable.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ballsort/internal/config"
	"github.com/vovakirdan/tui-ballsort/internal/core"
	"github.com/vovakirdan/tui-ballsort/internal/games/ballsort"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	registerFlags(env)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballsort",
	Short: "Ball Sort - sort colored balls in your terminal",
	Long: `Ball Sort is a terminal puzzle: move balls between compartments until
every compartment holds a single color, before the time runs out.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode and level picker
  levels   - List the level catalog
  scores   - View high scores and best times
  serve    - Start SSH server for remote play

Examples:
  ballsort play
  ballsort play ballsort_lives --difficulty easy
  ballsort menu
  ballsort serve --ssh :2222
  ballsort scores`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyGlobalFlags,
}

// registerFlags adds the global flags, using env values as defaults.
func registerFlags(env config.Env) {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random)")
	pf.StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", env.Config, "Path to custom rules and levels YAML")
	pf.StringVar(&flagDifficulty, "difficulty", env.Difficulty, "Difficulty preset: "+presetNames())
	pf.StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", env.LogFile, "Log file for local play")

	registerServeFlags(env)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGlobalFlags validates global flags and configures the game package.
func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	ballsort.SetConfigPath(flagConfig)
	ballsort.SetDifficultyPreset(flagDifficulty)
	return nil
}

func presetNames() string {
	names := make([]string, 0, len(config.Presets()))
	for _, p := range config.Presets() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// openLogFile opens the log file for local play, which must not write to
// the terminal the game is drawn on. An empty path discards logs.
func openLogFile() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := newLogger(f, "ballsort")
	ballsort.SetLogger(logger)
	return logger, func() { f.Close() }, nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
