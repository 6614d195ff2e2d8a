package ballsort

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-ballsort/internal/core"
	"github.com/vovakirdan/tui-ballsort/internal/registry"
)

// oneMove is solved by moving either ball out of the first compartment,
// whatever order the deal put them in.
const oneMove = `
levels:
  - name: One Move
    colors: [red, blue]
    balls_per_color: 1
    compartments: 3
`

// twoSolved has two levels that are already sorted when dealt.
const twoSolved = `
levels:
  - name: Solved A
    colors: [red]
    balls_per_color: 2
    compartments: 2
  - name: Solved B
    colors: [green]
    balls_per_color: 3
    compartments: 2
`

func newTestGame(t *testing.T, g *Game, yaml string, cfg core.RuntimeConfig) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ballsort.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("normal")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetStartLevel(0)
	})

	g.Reset(cfg)
	return g
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func step(g *Game, actions ...core.Action) core.GameState {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in).State
}

func TestGameRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"ballsort", "Ball Sort"},
		{"ballsort_lives", "Ball Sort (Lives)"},
	}
	for _, tt := range tests {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", tt.id, err)
		}
		if g.ID() != tt.id || g.Title() != tt.title {
			t.Errorf("Create(%q) = %s / %s", tt.id, g.ID(), g.Title())
		}
	}
}

func TestGameSolveWithKeys(t *testing.T) {
	g := newTestGame(t, New(), oneMove, testConfig())

	step(g, core.ActionSelect)
	if held, ok := g.Session().Held(); !ok || held != 0 {
		t.Fatalf("Held() = %d, %v, want 0, true", held, ok)
	}
	step(g, core.ActionRight)
	if g.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, want 1", g.Cursor())
	}
	state := step(g, core.ActionSelect)

	if !state.GameOver || state.Outcome != "won" {
		t.Fatalf("state = %+v, want game over with outcome won", state)
	}
	if state.Moves != 1 || state.Level != 1 {
		t.Errorf("moves %d level %d, want 1 and 1", state.Moves, state.Level)
	}
	// 100 for level 1, plus 179 whole seconds left after three ticks
	if state.Score != 279 {
		t.Errorf("Score = %d, want 279", state.Score)
	}
}

func TestGameCursorWraps(t *testing.T) {
	g := newTestGame(t, New(), oneMove, testConfig())
	step(g, core.ActionLeft)
	if g.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", g.Cursor())
	}
	step(g, core.ActionRight)
	if g.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", g.Cursor())
	}
}

func TestGameSlotKeys(t *testing.T) {
	g := newTestGame(t, New(), oneMove, testConfig())

	in := core.NewInputFrame()
	in.SetSlot(1)
	g.Step(in)
	in.Clear()
	in.SetSlot(3)
	state := g.Step(in).State

	if state.Outcome != "won" || g.Cursor() != 2 {
		t.Errorf("outcome %q cursor %d, want won and 2", state.Outcome, g.Cursor())
	}
}

func TestGameClicks(t *testing.T) {
	g := newTestGame(t, New(), oneMove, testConfig())
	rects := Layout(80, 3, DefaultCapacity)

	click := func(x, y int) core.GameState {
		in := core.NewInputFrame()
		in.SetClick(x, y)
		return g.Step(in).State
	}

	x, y := rects[0].Center()
	click(x, y)
	if _, ok := g.Session().Held(); !ok {
		t.Fatal("click on compartment 1 did not pick up")
	}

	click(0, 0)
	if _, ok := g.Session().Held(); ok {
		t.Fatal("click outside compartments did not cancel")
	}

	click(x, y)
	x, y = rects[2].Center()
	if state := click(x, y); state.Outcome != "won" {
		t.Errorf("Outcome = %q, want won", state.Outcome)
	}
}

func TestGameTimeUpAndUseLife(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 10
	g := newTestGame(t, NewLives(), "rules:\n  time_limit_seconds: 1\n"+oneMove, cfg)

	var state core.GameState
	for range 10 {
		state = step(g)
	}
	if state.Outcome != "time_up" || !state.GameOver {
		t.Fatalf("state = %+v, want time_up", state)
	}
	lives := g.Session().Lives()

	state = step(g, core.ActionUseLife)
	if state.GameOver || state.Outcome != "playing" {
		t.Errorf("after use life: %+v, want playing", state)
	}
	if g.Session().Lives() != lives-1 {
		t.Errorf("Lives() = %d, want %d", g.Session().Lives(), lives-1)
	}
	if g.Session().Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want clock reset", g.Session().Elapsed())
	}
}

func TestGameUseLifeIgnoredInClassic(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 10
	g := newTestGame(t, New(), "rules:\n  time_limit_seconds: 1\n"+oneMove, cfg)
	for range 10 {
		step(g)
	}
	if state := step(g, core.ActionUseLife); state.Outcome != "time_up" {
		t.Errorf("Outcome = %q, want time_up", state.Outcome)
	}
}

func TestGameNextLevelAndRestart(t *testing.T) {
	g := newTestGame(t, New(), twoSolved, testConfig())

	if state := step(g); state.Outcome != "won" {
		t.Fatalf("Outcome = %q, want won", state.Outcome)
	}
	state := step(g, core.ActionNextLevel)
	if state.Level != 2 || state.GameOver {
		t.Fatalf("after next level: %+v", state)
	}

	step(g)
	state = step(g, core.ActionRestart)
	if state.Level != 2 || state.GameOver {
		t.Errorf("after restart: %+v, want level 2 in play", state)
	}

	// No level after the last one: N does nothing.
	step(g)
	if state = step(g, core.ActionNextLevel); state.Level != 2 || !state.GameOver {
		t.Errorf("next level on last level: %+v", state)
	}
}

func TestGameStartLevel(t *testing.T) {
	SetStartLevel(2)
	g := newTestGame(t, New(), twoSolved, testConfig())
	if lvl := g.Session().Level().Number; lvl != 2 {
		t.Errorf("Level = %d, want 2", lvl)
	}
	// The selection is used once.
	g.Reset(testConfig())
	if lvl := g.Session().Level().Number; lvl != 1 {
		t.Errorf("Level after second Reset = %d, want 1", lvl)
	}
}

func TestGameSelectLevel(t *testing.T) {
	g := New()
	g.SelectLevel(2)
	newTestGame(t, g, twoSolved, testConfig())
	if lvl := g.Session().Level().Number; lvl != 2 {
		t.Errorf("Level = %d, want 2", lvl)
	}

	g = New()
	g.SelectLevel(9)
	newTestGame(t, g, twoSolved, testConfig())
	if lvl := g.Session().Level().Number; lvl != 1 {
		t.Errorf("Level = %d, want 1 for out-of-range selection", lvl)
	}
}

func TestLoadCatalogUsesConfig(t *testing.T) {
	newTestGame(t, New(), twoSolved, testConfig())
	c := LoadCatalog()
	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", c.Count())
	}
	if lvl, _ := c.Get(2); lvl.Name != "Solved B" {
		t.Errorf("Get(2).Name = %q, want %q", lvl.Name, "Solved B")
	}
}

func TestGamePauseStopsClock(t *testing.T) {
	g := newTestGame(t, New(), oneMove, testConfig())
	step(g)
	if state := step(g, core.ActionPause); !state.Paused {
		t.Fatal("Paused = false after pause")
	}
	before := g.Session().Elapsed()
	for range 30 {
		step(g)
	}
	if g.Session().Elapsed() != before {
		t.Errorf("Elapsed() moved from %v to %v while paused", before, g.Session().Elapsed())
	}
	if state := step(g, core.ActionPause); state.Paused {
		t.Error("Paused = true after unpause")
	}
}

func TestGameInvalidConfigFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		capacity int
	}{
		{
			name:     "unknown color",
			yaml:     "levels:\n  - colors: [magenta]\n    balls_per_color: 1\n    compartments: 2\n",
			capacity: 5,
		},
		{
			name:     "more balls per color than capacity",
			yaml:     "levels:\n  - colors: [red, blue]\n    balls_per_color: 6\n    compartments: 4\n",
			capacity: 5,
		},
		{
			name:     "capacity below custom level",
			yaml:     "rules:\n  max_capacity: 4\nlevels:\n  - colors: [red, blue]\n    balls_per_color: 5\n    compartments: 3\n",
			capacity: 4,
		},
		{
			name:     "capacity below built-in levels",
			yaml:     "rules:\n  max_capacity: 3\n",
			capacity: DefaultCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, New(), tt.yaml, testConfig())
			catalog := g.Session().Catalog()
			if n := catalog.Count(); n != len(DefaultLevels) {
				t.Errorf("Catalog().Count() = %d, want built-in %d", n, len(DefaultLevels))
			}
			rules := g.Session().Rules()
			if rules.Capacity != tt.capacity {
				t.Errorf("Capacity = %d, want %d", rules.Capacity, tt.capacity)
			}
			if err := catalog.CheckCapacity(rules.Capacity); err != nil {
				t.Errorf("loaded catalog cannot be won: %v", err)
			}
		})
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, New(), oneMove, testConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if row := screen.Row(1); !strings.Contains(row, "Level 1 | Time: 0.00s | Moves: 0") {
		t.Errorf("HUD row = %q", row)
	}
	if !strings.Contains(screen.String(), string(CursorChar)) {
		t.Error("cursor not drawn")
	}

	step(g, core.ActionSelect)
	step(g, core.ActionRight)
	step(g, core.ActionSelect)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "You Win! Time: 0.05s") {
		t.Errorf("win overlay missing:\n%s", out)
	}
	if strings.Contains(out, "[N] Next level") {
		t.Error("next level offered on the last level")
	}
}

func TestGameTooSmall(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 6
	g := newTestGame(t, New(), oneMove, cfg)

	if !g.State().Paused {
		t.Error("State().Paused = false on a tiny screen")
	}
	screen := core.NewScreen(20, 6)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("too-small message missing:\n%s", screen.String())
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("still paused after resize")
	}
}

func TestHitTest(t *testing.T) {
	rects := Layout(40, 2, 3)
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"first tube", rects[0].X, rects[0].Y, 0},
		{"above second tube", rects[1].X + 2, rects[1].Y - 1, 1},
		{"second label", rects[1].X + 2, rects[1].Bottom() + 1, 1},
		{"gap", rects[0].Right(), rects[0].Y, -1},
		{"hud", rects[0].X, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(rects, tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestOverlayLines(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		first string
		hint  string
	}{
		{"playing", Snapshot{Status: StatusPlaying}, "", ""},
		{"paused", Snapshot{Status: StatusPlaying, Paused: true}, "PAUSED", "[P] Resume"},
		{"time up", Snapshot{Status: StatusTimeUp}, "Time's Up!", "[R] Retry"},
		{"move limit", Snapshot{Status: StatusMoveLimitExceeded, MoveLimit: 30}, "Out of Moves!", "[R] Retry"},
		{"stuck", Snapshot{Status: StatusStuck, Reason: ReasonNoMoves}, "Game Over!", "[R] Retry"},
		{"lives", Snapshot{Status: StatusStuck, LivesEnabled: true, Lives: 2}, "Game Over!", "[L] Use life (2)"},
		{"won with next", Snapshot{Status: StatusWon, HasNextLevel: true}, "You Win! Time: 0.00s", "[N] Next level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := OverlayLines(tt.snap)
			if tt.first == "" {
				if lines != nil {
					t.Errorf("OverlayLines() = %v, want nil", lines)
				}
				return
			}
			if len(lines) == 0 || lines[0] != tt.first {
				t.Fatalf("OverlayLines() = %v, want first line %q", lines, tt.first)
			}
			if !strings.Contains(strings.Join(lines, "\n"), tt.hint) {
				t.Errorf("OverlayLines() = %v, want hint %q", lines, tt.hint)
			}
		})
	}
}

func TestHUDLine(t *testing.T) {
	snap := Snapshot{Level: 4, Elapsed: 12340e6, MovesRemaining: 7, LivesEnabled: true, Lives: 3}
	want := "Level 4 | Time: 12.34s | Moves left: 7 | Lives: 3"
	if got := HUDLine(snap); got != want {
		t.Errorf("HUDLine() = %q, want %q", got, want)
	}
}
