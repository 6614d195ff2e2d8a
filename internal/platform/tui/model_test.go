package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ballsort/internal/core"
	"github.com/vovakirdan/tui-ballsort/internal/games/ballsort"
	"github.com/vovakirdan/tui-ballsort/internal/storage"
)

// oneMove is solved by moving the top ball of compartment 1 anywhere.
const oneMove = `
levels:
  - name: One Move
    colors: [red, blue]
    balls_per_color: 1
    compartments: 3
`

func useConfig(t *testing.T, yaml string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "ballsort.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	ballsort.SetConfigPath(path)
	t.Cleanup(func() { ballsort.SetConfigPath("") })
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func updateModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm
}

func tick(gen int) TickMsg {
	return TickMsg{Time: time.Now(), gen: gen}
}

func TestModelRecordsAttemptOnce(t *testing.T) {
	useConfig(t, oneMove)
	store := openStore(t)

	m := NewModel(ballsort.New(), store, testConfig(), nil)
	m.Init()

	m = updateModel(t, m, runeKey('1'))
	m = updateModel(t, m, tick(0))
	m = updateModel(t, m, runeKey('2'))
	m = updateModel(t, m, tick(0))

	if !m.gameState.GameOver || m.gameState.Outcome != "won" {
		t.Fatalf("gameState = %+v, want won", m.gameState)
	}

	// More ticks on the same finished attempt must not record it again.
	m = updateModel(t, m, tick(0))
	m = updateModel(t, m, tick(0))

	attempts, err := store.RecentAttempts("ballsort", 10)
	if err != nil {
		t.Fatalf("RecentAttempts() error = %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("len(attempts) = %d, want 1", len(attempts))
	}
	a := attempts[0]
	if !a.Won() || a.Level != 1 || a.Moves != 1 || a.Score != m.gameState.Score {
		t.Errorf("attempt = %+v, want a level 1 win in 1 move scoring %d", a, m.gameState.Score)
	}

	scores, err := store.TopScores("ballsort", 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0].Score != m.gameState.Score {
		t.Errorf("scores = %+v, want one entry of %d", scores, m.gameState.Score)
	}

	// Replaying records the next finished attempt too.
	m = updateModel(t, m, runeKey('r'))
	m = updateModel(t, m, tick(0))
	if m.gameState.GameOver {
		t.Fatal("restart should start a new attempt")
	}
	m = updateModel(t, m, runeKey('1'))
	m = updateModel(t, m, tick(0))
	m = updateModel(t, m, runeKey('3'))
	m = updateModel(t, m, tick(0))

	attempts, _ = store.RecentAttempts("ballsort", 10)
	if len(attempts) != 2 {
		t.Errorf("len(attempts) = %d, want 2", len(attempts))
	}
}

func TestModelClickMovesBall(t *testing.T) {
	useConfig(t, oneMove)
	g := ballsort.New()
	m := NewModel(g, nil, testConfig(), nil)
	m.Init()

	rects := ballsort.Layout(80, 3, g.Session().Rules().Capacity)
	click := func(r core.Rect) tea.MouseMsg {
		return tea.MouseMsg{X: r.X + 1, Y: r.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	m = updateModel(t, m, click(rects[0]))
	m = updateModel(t, m, tick(0))
	if _, holding := g.Session().Held(); !holding {
		t.Fatal("click on compartment 1 should pick up a ball")
	}
	m = updateModel(t, m, click(rects[2]))
	m = updateModel(t, m, tick(0))
	if m.gameState.Outcome != "won" {
		t.Errorf("Outcome = %q, want won", m.gameState.Outcome)
	}
}

func TestModelBackOnlyWhenIdle(t *testing.T) {
	useConfig(t, oneMove)
	m := NewModel(ballsort.New(), nil, testConfig(), nil)
	m.Init()
	m = updateModel(t, m, tick(0))

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = updateModel(t, m, runeKey('p'))
	m = updateModel(t, m, tick(0))
	if !m.gameState.Paused {
		t.Fatal("game should be paused")
	}
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	useConfig(t, oneMove)
	g := ballsort.New()
	m := NewModel(g, nil, testConfig(), nil)
	m.gen = 2
	m.Init()

	next, cmd := m.Update(tick(1))
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if next.(Model).gameState != (core.GameState{}) {
		t.Error("stale tick should not step the game")
	}
	if _, cmd := m.Update(tick(2)); cmd == nil {
		t.Error("current tick should schedule the next one")
	}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	useConfig(t, oneMove)
	g := ballsort.New()
	m := NewModel(g, nil, testConfig(), nil)
	m.Init()

	m = updateModel(t, m, runeKey('1'))
	m = updateModel(t, m, tick(0))
	m = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if _, holding := g.Session().Held(); !holding {
		t.Error("resize should not reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	useConfig(t, oneMove)
	m := NewModel(ballsort.New(), nil, testConfig(), nil)
	m.Init()

	m = updateModel(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "AB", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xyz", core.ColorBrightWhite)

	out := RenderScreen(s, NewPalette(nil))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"AB", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q in %q", want, out)
		}
	}
}
