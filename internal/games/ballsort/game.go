package ballsort

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ballsort/internal/config"
	"github.com/vovakirdan/tui-ballsort/internal/core"
	"github.com/vovakirdan/tui-ballsort/internal/random"
	"github.com/vovakirdan/tui-ballsort/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeLives   Mode = "lives"
)

// Game adapts a Session to the platform: it owns the compartment cursor,
// the tick clock and pointer hit-testing.
type Game struct {
	mode    Mode
	logger  *log.Logger
	session *Session
	tick    uint64

	attemptTicks int // Ticks since the current attempt was dealt
	tickDuration time.Duration

	startLevel int // Level picked for this instance; 0 falls back to SetStartLevel
	cursor     int
	lastStatus Status
	message    string // Short feedback shown under the board

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath         string
	difficultyPreset   = config.DifficultyNormal
	selectedStartLevel int
	defaultLogger      = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names mean normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetStartLevel sets the level the next Reset deals. 0 means level 1.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// New creates a classic ball sort game: no lives.
func New() *Game {
	return &Game{mode: ModeClassic, logger: defaultLogger}
}

// NewLives creates a ball sort game with lives.
func NewLives() *Game {
	return &Game{mode: ModeLives, logger: defaultLogger}
}

func init() {
	registry.Register("ballsort", func() registry.Game {
		return New()
	})
	registry.Register("ballsort_lives", func() registry.Game {
		return NewLives()
	})
}

// SetLogger replaces the logger of this game. Nil is ignored.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeLives {
		return "ballsort_lives"
	}
	return "ballsort"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeLives {
		return "Ball Sort (Lives)"
	}
	return "Ball Sort"
}

// Reset loads configuration, builds a fresh session and deals the start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	catalog, rules := loadRules(g.logger, g.mode == ModeLives)

	g.session = NewSession(catalog, rules, random.New(cfg.Seed))
	g.tick = 0
	g.tickDuration = cfg.TickDuration()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.message = ""
	g.cursor = 0

	start := g.startLevel
	if start == 0 {
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	if start < 1 || start > catalog.Count() {
		start = 1
	}
	if err := g.session.Start(start); err != nil {
		// Unreachable: start is within the catalog.
		g.logger.Error("start failed", "level", start, "err", err)
	}
	g.newAttempt()

	g.logger.Info("session started", "mode", g.mode, "level", start, "levels", catalog.Count(),
		"seed", cfg.Seed, "time_limit", rules.TimeLimit, "lives", g.session.Lives())

	g.checkScreenSize()
}

// SelectLevel makes Reset deal the given level instead of level 1.
// Out-of-range values fall back to level 1.
func (g *Game) SelectLevel(level int) {
	g.startLevel = level
}

// LoadCatalog returns the catalog the next Reset will play, honoring the
// configured path and difficulty preset.
func LoadCatalog() *Catalog {
	catalog, _ := loadRules(defaultLogger, false)
	return catalog
}

// LoadRules returns the rules the next Reset will use for the given mode.
func LoadRules(lives bool) Rules {
	_, rules := loadRules(defaultLogger, lives)
	return rules
}

// loadRules reads the YAML config and applies the difficulty preset.
// Any problem falls back to the built-in catalog and rules.
func loadRules(logger *log.Logger, lives bool) (*Catalog, Rules) {
	cfg, err := config.LoadBallSort(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultBallSortConfig()
	}
	config.ApplyBallSortPreset(&cfg, difficultyPreset)

	catalog, err := CatalogFromConfig(cfg.Levels)
	if err != nil {
		logger.Warn("invalid levels, using built-in catalog", "err", err)
		catalog = DefaultCatalog()
	}

	rules := RulesFromConfig(cfg.Rules, lives)
	if err := catalog.CheckCapacity(rules.Capacity); err != nil {
		logger.Warn("levels exceed compartment capacity, using built-in catalog", "err", err)
		catalog = DefaultCatalog()
		if err := catalog.CheckCapacity(rules.Capacity); err != nil {
			def := config.DefaultRules().MaxCapacity
			logger.Warn("capacity too small for built-in catalog, using default", "err", err, "capacity", def)
			rules.Capacity = def
		}
	}
	return catalog, rules
}

// CatalogFromConfig converts YAML level definitions into a validated catalog.
// An empty list yields the default catalog.
func CatalogFromConfig(levels []config.LevelConfig) (*Catalog, error) {
	if len(levels) == 0 {
		return DefaultCatalog(), nil
	}
	out := make([]Level, 0, len(levels))
	for i, lc := range levels {
		colors := make([]Color, 0, len(lc.Colors))
		for _, name := range lc.Colors {
			c, ok := ParseColor(name)
			if !ok {
				return nil, fmt.Errorf("level %d: unknown color %q (want one of %v)", i+1, name, Palette())
			}
			colors = append(colors, c)
		}
		out = append(out, Level{
			Name:          lc.Name,
			Colors:        colors,
			BallsPerColor: lc.BallsPerColor,
			Compartments:  lc.Compartments,
			MoveLimit:     lc.MoveLimit,
		})
	}
	return NewCatalog(out)
}

// RulesFromConfig converts YAML rules into session rules.
func RulesFromConfig(rc config.RulesConfig, lives bool) Rules {
	return Rules{
		Capacity:      rc.MaxCapacity,
		TimeLimit:     rc.TimeLimit(),
		LivesEnabled:  lives,
		StartingLives: rc.StartingLives,
		WinBonusLives: rc.WinBonusLives,
	}
}

// Resize updates the screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the current level.
func (g *Game) checkScreenSize() {
	minW, minH := MinScreenSize(g.session.Level().Compartments, g.session.Rules().Capacity)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// newAttempt restarts the attempt clock after any deal.
func (g *Game) newAttempt() {
	g.attemptTicks = 0
	g.lastStatus = g.session.Status()
	g.cursor = core.Clamp(g.cursor, 0, g.session.Level().Compartments-1)
	g.checkScreenSize()
}

// elapsed converts attempt ticks to simulated time.
func (g *Game) elapsed() time.Duration {
	return time.Duration(g.attemptTicks) * g.tickDuration
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle pause (only while an attempt is running)
	if in.Has(core.ActionPause) && g.session.Status() == StatusPlaying {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.session.Status() == StatusPlaying {
		g.stepPlaying(in)
	} else {
		g.stepTerminal(in)
	}

	g.logTransition()
	return core.StepResult{State: g.State()}
}

// stepPlaying applies input, then advances the clock and checks end conditions.
func (g *Game) stepPlaying(in core.InputFrame) {
	n := g.session.Level().Compartments

	if in.Has(core.ActionRestart) {
		g.restart()
		return
	}

	switch {
	case in.Has(core.ActionLeft):
		g.cursor = (g.cursor - 1 + n) % n
	case in.Has(core.ActionRight):
		g.cursor = (g.cursor + 1) % n
	}

	switch {
	case in.Slot > 0:
		if in.Slot <= n {
			g.cursor = in.Slot - 1
			g.activate(g.cursor)
		}
	case in.Click != nil:
		if i := HitTest(g.layout(), in.Click.X, in.Click.Y); i >= 0 {
			g.cursor = i
			g.activate(i)
		} else {
			// Clicking outside any compartment puts the ball back.
			g.session.Cancel()
		}
	case in.Has(core.ActionSelect):
		g.activate(g.cursor)
	case in.Has(core.ActionCancel):
		g.session.Cancel()
	}

	g.attemptTicks++
	g.session.Tick(g.elapsed())
}

// activate picks up from compartment i, or drops the held ball onto it.
func (g *Game) activate(i int) {
	if _, holding := g.session.Held(); !holding {
		if c, ok := g.session.PickUp(i); ok {
			g.message = ""
			if len(g.session.Puzzle().LegalTargets(i)) == 0 {
				g.message = fmt.Sprintf("No compartment can take this %s ball", c)
			}
		}
		return
	}

	err := g.session.Drop(i)
	var illegal *IllegalMoveError
	switch {
	case err == nil:
		g.message = ""
	case errors.As(err, &illegal):
		g.logger.Warn("illegal drop", "level", g.session.Level().Number,
			"from", illegal.From+1, "to", illegal.To+1, "color", illegal.Color)
		g.message = fmt.Sprintf("Compartment %d can't take a %s ball", illegal.To+1, illegal.Color)
	default:
		g.logger.Debug("drop rejected", "err", err)
	}
}

// stepTerminal handles the choices offered once an attempt has ended.
func (g *Game) stepTerminal(in core.InputFrame) {
	switch {
	case in.Has(core.ActionRestart):
		g.restart()
	case in.Has(core.ActionNextLevel):
		if !g.session.HasNextLevel() {
			return
		}
		if err := g.session.AdvanceLevel(); err != nil {
			g.logger.Debug("advance rejected", "err", err)
			return
		}
		g.message = ""
		g.newAttempt()
		g.logger.Info("level advanced", "level", g.session.Level().Number)
	case in.Has(core.ActionUseLife):
		if err := g.session.UseLife(); err != nil {
			g.logger.Debug("use life rejected", "err", err)
			return
		}
		g.message = ""
		g.newAttempt()
		g.logger.Info("life used", "level", g.session.Level().Number, "lives", g.session.Lives())
	}
}

// restart re-deals the current level.
func (g *Game) restart() {
	if err := g.session.Restart(); err != nil {
		g.logger.Debug("restart rejected", "err", err)
		return
	}
	g.message = ""
	g.newAttempt()
	g.logger.Info("level restarted", "level", g.session.Level().Number)
}

// logTransition logs each change of session status once.
func (g *Game) logTransition() {
	status := g.session.Status()
	if status == g.lastStatus {
		return
	}
	g.lastStatus = status

	kv := []any{
		"level", g.session.Level().Number,
		"status", status,
		"moves", g.session.Moves(),
		"elapsed", g.session.Elapsed().Round(10 * time.Millisecond),
	}
	switch {
	case status == StatusWon:
		g.logger.Info("level won", append(kv, "score", g.session.Score())...)
	case status == StatusStuck:
		g.logger.Info("attempt ended", append(kv, "reason", g.session.Reason())...)
	default:
		g.logger.Info("attempt ended", kv...)
	}
}

// Session exposes the underlying session for inspection.
func (g *Game) Session() *Session {
	return g.session
}

// Cursor returns the compartment under the keyboard cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: status.Terminal(),
		Paused:   g.paused || g.tooSmall,
		Level:    g.session.Level().Number,
		Outcome:  status.String(),
		Moves:    g.session.Moves(),
		Elapsed:  g.session.Elapsed(),
	}
}
