package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ballsort/internal/games/ballsort"
	"github.com/vovakirdan/tui-ballsort/internal/storage"
)

// twoLevels has two levels; the second one is already sorted when dealt.
const twoLevels = `
levels:
  - name: First
    colors: [red, blue]
    balls_per_color: 1
    compartments: 3
  - name: Second
    colors: [green]
    balls_per_color: 2
    compartments: 2
`

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestSessionMenuToGameAndBack(t *testing.T) {
	useConfig(t, twoLevels)
	m := NewSessionModel(nil, testConfig(), nil, nil)

	if !strings.Contains(m.View(), "Ball Sort") {
		t.Fatalf("menu should list Ball Sort:\n%s", m.View())
	}

	m = updateSession(t, m, keyEnter)
	if m.screen != screenLevels || m.gameID != "ballsort" {
		t.Fatalf("screen = %v game = %q, want level select for ballsort", m.screen, m.gameID)
	}

	m = updateSession(t, m, keyEnter)
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	g := m.gameModel.game.(*ballsort.Game)
	if lvl := g.Session().Level().Number; lvl != 1 {
		t.Errorf("Level = %d, want 1", lvl)
	}

	m = updateSession(t, m, runeKey('p'))
	m = updateSession(t, m, TickMsg{Time: time.Now(), gen: m.games})
	m = updateSession(t, m, keyEsc)
	if m.screen != screenMenu || m.gameModel != nil {
		t.Errorf("screen = %v, want menu after leaving a paused game", m.screen)
	}
}

func TestSessionGameLogsThroughSessionLogger(t *testing.T) {
	useConfig(t, twoLevels)
	var buf bytes.Buffer
	logger := log.New(&buf).With("user", "alice")
	m := NewSessionModel(nil, testConfig(), nil, logger)

	m = updateSession(t, m, keyEnter)
	m = updateSession(t, m, keyEnter)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	var gameLines int
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.Contains(line, "session started") {
			continue
		}
		gameLines++
		if !strings.Contains(line, "user=alice") || !strings.Contains(line, "game=ballsort") {
			t.Errorf("game log line missing session fields: %q", line)
		}
	}
	if gameLines == 0 {
		t.Errorf("no game log lines in session log:\n%s", buf.String())
	}
}

func TestSessionSelectLevel(t *testing.T) {
	useConfig(t, twoLevels)
	m := NewSessionModel(nil, testConfig(), nil, nil)

	m = updateSession(t, m, keyEnter) // Ball Sort
	m = updateSession(t, m, keyDown)
	m = updateSession(t, m, keyEnter) // Select Level...
	if !strings.Contains(m.View(), "Second") {
		t.Fatalf("level list should show the configured levels:\n%s", m.View())
	}
	m = updateSession(t, m, keyDown)
	m = updateSession(t, m, keyEnter)

	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	g := m.gameModel.game.(*ballsort.Game)
	if lvl := g.Session().Level().Number; lvl != 2 {
		t.Errorf("Level = %d, want 2", lvl)
	}
}

func TestSessionLevelSelectBack(t *testing.T) {
	useConfig(t, twoLevels)
	m := NewSessionModel(nil, testConfig(), nil, nil)

	m = updateSession(t, m, keyEnter)
	m = updateSession(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionStaleTickAfterNewGame(t *testing.T) {
	useConfig(t, twoLevels)
	m := NewSessionModel(nil, testConfig(), nil, nil)

	m = updateSession(t, m, keyEnter)
	m = updateSession(t, m, keyEnter)
	first := m.games

	m = updateSession(t, m, runeKey('p'))
	m = updateSession(t, m, TickMsg{Time: time.Now(), gen: first})
	m = updateSession(t, m, keyEsc)
	m = updateSession(t, m, keyEnter)
	m = updateSession(t, m, keyEnter)

	if m.games != first+1 {
		t.Fatalf("games = %d, want %d", m.games, first+1)
	}
	if _, cmd := m.Update(TickMsg{Time: time.Now(), gen: first}); cmd != nil {
		t.Error("tick from the previous game should be dropped")
	}
}

func TestSessionScoreboard(t *testing.T) {
	useConfig(t, twoLevels)
	store := openStore(t)
	if _, err := store.SaveAttempt(storage.Attempt{
		GameID: "ballsort", Level: 1, Outcome: "won", Moves: 4, Duration: 2500 * time.Millisecond, Score: 180,
	}); err != nil {
		t.Fatalf("SaveAttempt() error = %v", err)
	}
	if _, err := store.SaveAttempt(storage.Attempt{
		GameID: "ballsort", Level: 2, Outcome: "time_up", Moves: 9, Duration: 3 * time.Minute,
	}); err != nil {
		t.Fatalf("SaveAttempt() error = %v", err)
	}
	if _, err := store.SaveScore("ballsort", 1, 180); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 100, 30
	m := NewSessionModel(store, cfg, nil, nil)
	m = updateSession(t, m, keyTab)
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Ball Sort", "Attempts: 2", "Wins: 1 (50%)", "Best times", "2.50s", "180"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, view)
		}
	}

	m = updateSession(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	useConfig(t, twoLevels)
	m := NewSessionModel(nil, testConfig(), nil, nil)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestLevelLine(t *testing.T) {
	lvl := ballsort.Level{
		Number:        4,
		Name:          "Counting Moves",
		Colors:        []ballsort.Color{ballsort.Red, ballsort.Blue, ballsort.Yellow, ballsort.Purple, ballsort.Orange},
		BallsPerColor: 3,
		Compartments:  6,
		MoveLimit:     30,
	}

	want := " 4. Counting Moves   5 colors x3, 6 tubes, 30 moves  [RBYPO]"
	if got := LevelLine(lvl, 0); got != want {
		t.Errorf("LevelLine() = %q, want %q", got, want)
	}
	if got := LevelLine(lvl, 12340*time.Millisecond); got != want+"  best 12.34s" {
		t.Errorf("LevelLine() = %q, want best time suffix", got)
	}
}
