package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ballsort/internal/games/ballsort"
	"github.com/vovakirdan/tui-ballsort/internal/storage"
)

// LevelSelectModel lets users start from the first level or pick one
// from the catalog.
type LevelSelectModel struct {
	title         string
	levels        []ballsort.Level
	best          map[int]time.Duration // Fastest win per level
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	level         int // Chosen level, 0 while choosing
	quitting      bool
	back          bool
}

// NewLevelSelectModel creates a level selector for the given mode title.
// Best times are read from store when it is not nil.
func NewLevelSelectModel(title string, catalog *ballsort.Catalog, store *storage.Store, gameID string, width, height int) LevelSelectModel {
	best := make(map[int]time.Duration)
	if store != nil {
		if times, err := store.BestTimes(gameID); err == nil {
			for _, bt := range times {
				best[bt.Level] = bt.Duration
			}
		}
	}

	return LevelSelectModel{
		title:     title,
		levels:    catalog.Levels(),
		best:      best,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleStartKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handleStartKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 1 { // 2 options: Start, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == 0 {
			m.level = 1
		} else {
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
	}

	return m, nil
}

func (m LevelSelectModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.level = m.levelCursor + 1
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the start or level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewStart()
}

func (m LevelSelectModel) viewStart() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")

	options := []string{
		fmt.Sprintf("Start (%d levels)", len(m.levels)),
		"Select Level...",
	}
	for i, opt := range options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m LevelSelectModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+LevelLine(lvl, m.best[lvl.Number]), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// LevelLine describes a level on one line, with its best time when known.
func LevelLine(lvl ballsort.Level, best time.Duration) string {
	line := fmt.Sprintf("%2d. %-16s %d colors x%d, %d tubes", lvl.Number, lvl.Name,
		len(lvl.Colors), lvl.BallsPerColor, lvl.Compartments)
	if lvl.HasMoveLimit() {
		line += fmt.Sprintf(", %d moves", lvl.MoveLimit)
	}
	codes := make([]rune, len(lvl.Colors))
	for i, c := range lvl.Colors {
		codes[i] = c.Char()
	}
	line += "  [" + string(codes) + "]"
	if best > 0 {
		line += fmt.Sprintf("  best %.2fs", best.Seconds())
	}
	return line
}

// Selected returns the chosen 1-based level, or 0 while still choosing.
func (m LevelSelectModel) Selected() int {
	return m.level
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}
