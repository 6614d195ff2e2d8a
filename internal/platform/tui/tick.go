// Package tui runs ball sort in a terminal with Bubble Tea: the game loop,
// input mapping, menus, the scoreboard and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ballsort/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Time time.Time
	gen  int // Game model the tick belongs to
}

// tickCmd schedules the next simulation tick for the given config.
func tickCmd(cfg core.RuntimeConfig, gen int) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}
