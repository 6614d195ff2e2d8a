package ballsort

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-ballsort/internal/core"
)

const (
	tubeWidth    = 5 // Wall, padding, ball, padding, wall
	tubeGap      = 2 // Columns between compartments
	hudHeight    = 3
	boardTop     = hudHeight + 2 // Leaves one row above for the lifted ball
	footerHeight = 5             // Cursor, label, blank, message, key hints
)

// Visual characters for rendering
const (
	BallChar   = '●'
	CursorChar = '▲'
)

// ScreenColor maps a ball color to a terminal color.
func (c Color) ScreenColor() core.Color {
	switch c {
	case Red:
		return core.ColorRed
	case Blue:
		return core.ColorBlue
	case Yellow:
		return core.ColorYellow
	case Purple:
		return core.ColorMagenta
	case Orange:
		return core.ColorOrange
	case Cyan:
		return core.ColorCyan
	case Green:
		return core.ColorGreen
	default:
		return core.ColorDefault
	}
}

// MinScreenSize returns the smallest screen that fits the board.
func MinScreenSize(compartments, capacity int) (int, int) {
	return boardWidth(compartments) + 2, boardTop + capacity + 1 + footerHeight
}

func boardWidth(compartments int) int {
	return compartments*tubeWidth + (compartments-1)*tubeGap
}

// Layout returns the rectangle of each compartment, centered horizontally.
// Each rectangle covers rows ball slots plus the bottom wall.
func Layout(screenW, compartments, rows int) []core.Rect {
	x0 := core.Max(0, (screenW-boardWidth(compartments))/2)
	rects := make([]core.Rect, compartments)
	for i := range rects {
		rects[i] = core.NewRect(x0+i*(tubeWidth+tubeGap), boardTop, tubeWidth, rows+1)
	}
	return rects
}

// HitTest returns the compartment under (x, y), or -1.
// The row above a compartment and its cursor and label rows count as part of it.
func HitTest(rects []core.Rect, x, y int) int {
	for i, r := range rects {
		if core.NewRect(r.X, r.Y-1, r.W, r.H+3).Contains(x, y) {
			return i
		}
	}
	return -1
}

// layout sizes compartments for the capacity, or the tallest stack if a
// custom deal overfills one.
func (g *Game) layout() []core.Rect {
	rows := g.session.Rules().Capacity
	if p := g.session.Puzzle(); p != nil {
		for i := range p.Len() {
			rows = core.Max(rows, p.Size(i))
		}
	}
	return Layout(g.screenW, g.session.Level().Compartments, rows)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.Snapshot()
	rects := g.layout()

	g.renderHUD(dst, snap)
	renderBoard(dst, snap, rects)
	g.renderFooter(dst, snap, rects)
	renderOverlay(dst, snap)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := MinScreenSize(g.session.Level().Compartments, g.session.Rules().Capacity)
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, please resize terminal", minW, minH))
}

// HUDLine formats the status line: level, elapsed time, moves and lives.
func HUDLine(snap Snapshot) string {
	parts := []string{
		fmt.Sprintf("Level %d", snap.Level),
		fmt.Sprintf("Time: %.2fs", snap.Elapsed.Seconds()),
	}
	if snap.MovesRemaining >= 0 {
		parts = append(parts, fmt.Sprintf("Moves left: %d", snap.MovesRemaining))
	} else {
		parts = append(parts, fmt.Sprintf("Moves: %d", snap.Moves))
	}
	if snap.LivesEnabled {
		parts = append(parts, fmt.Sprintf("Lives: %d", snap.Lives))
	}
	return strings.Join(parts, " | ")
}

// renderHUD draws the title, status line and level name.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	drawCentered(dst, 0, g.Title(), core.ColorBrightWhite)
	drawCentered(dst, 1, HUDLine(snap), core.ColorDefault)

	name := fmt.Sprintf("%s (%d/%d)", snap.LevelName, snap.Level, snap.Levels)
	drawCentered(dst, 2, name, core.ColorGray)
}

// renderBoard draws the compartments, their balls, the lifted ball and the cursor.
func renderBoard(dst *core.Screen, snap Snapshot, rects []core.Rect) {
	var held Color
	holding := snap.Held >= 0 && snap.Held < len(snap.Compartments) && len(snap.Compartments[snap.Held]) > 0
	if holding {
		s := snap.Compartments[snap.Held]
		held = s[len(s)-1]
	}

	for i, r := range rects {
		if i >= len(snap.Compartments) {
			break
		}
		stack := snap.Compartments[i]

		wall := core.ColorGray
		switch {
		case snap.Status == StatusPlaying && i == snap.Cursor:
			wall = core.ColorBrightWhite
		case holding && i != snap.Held && CanAccept(stack, held, snap.Capacity):
			wall = core.ColorGreen
		}
		drawTube(dst, r, wall)
		cx, _ := r.Center()

		if holding && i == snap.Held {
			stack = stack[:len(stack)-1]
			dst.SetColored(cx, r.Y-1, BallChar, held.ScreenColor())
		}
		for k, c := range stack {
			dst.SetColored(cx, r.Bottom()-2-k, BallChar, c.ScreenColor())
		}

		if snap.Status == StatusPlaying && i == snap.Cursor {
			dst.SetColored(cx, r.Bottom(), CursorChar, core.ColorBrightWhite)
		}
		label := fmt.Sprintf("%d", i+1)
		dst.DrawTextColored(r.X+(r.W-len(label)+1)/2, r.Bottom()+1, label, core.ColorGray)
	}
}

// drawTube draws an open-topped compartment.
func drawTube(dst *core.Screen, r core.Rect, c core.Color) {
	for y := r.Y; y < r.Bottom()-1; y++ {
		dst.SetColored(r.X, y, '│', c)
		dst.SetColored(r.Right()-1, y, '│', c)
	}
	dst.SetColored(r.X, r.Bottom()-1, '└', c)
	for x := r.X + 1; x < r.Right()-1; x++ {
		dst.SetColored(x, r.Bottom()-1, '─', c)
	}
	dst.SetColored(r.Right()-1, r.Bottom()-1, '┘', c)
}

// renderFooter draws the feedback message and key hints.
func (g *Game) renderFooter(dst *core.Screen, snap Snapshot, rects []core.Rect) {
	if len(rects) > 0 && g.message != "" {
		drawCentered(dst, rects[0].Bottom()+3, g.message, core.ColorYellow)
	}
	hints := "←/→ move  1-9 pick  Enter pick/drop  X cancel  R restart  P pause  Q quit"
	if len([]rune(hints)) > g.screenW {
		hints = "←/→ Enter X R P Q"
	}
	drawCentered(dst, g.screenH-1, hints, core.ColorGray)
}

// OverlayLines returns the centered message box for terminal and paused
// states, or nil while play is running.
func OverlayLines(snap Snapshot) []string {
	if snap.Paused {
		return []string{"PAUSED", "", "[P] Resume  [Q] Quit"}
	}

	var lines []string
	switch snap.Status {
	case StatusWon:
		lines = []string{
			fmt.Sprintf("You Win! Time: %.2fs", snap.CompletionTime.Seconds()),
			fmt.Sprintf("Score: %d", snap.Score),
			"",
		}
		if snap.HasNextLevel {
			return append(lines, "[N] Next level  [R] Replay  [Q] Quit")
		}
		return append(lines, "All levels cleared!", "[R] Replay  [Q] Quit")
	case StatusTimeUp:
		lines = []string{"Time's Up!"}
	case StatusMoveLimitExceeded:
		lines = []string{"Out of Moves!", fmt.Sprintf("Limit was %d moves", snap.MoveLimit)}
	case StatusStuck:
		lines = []string{"Game Over!"}
		if snap.Reason == ReasonIllegalDrop {
			lines = append(lines, "That ball didn't fit there")
		} else {
			lines = append(lines, "No legal moves left")
		}
	default:
		return nil
	}

	hint := "[R] Retry"
	if snap.LivesEnabled && snap.Lives > 0 {
		hint += fmt.Sprintf("  [L] Use life (%d)", snap.Lives)
	}
	return append(lines, "", hint+"  [Q] Quit")
}

// renderOverlay draws the message box over the board.
func renderOverlay(dst *core.Screen, snap Snapshot) {
	lines := OverlayLines(snap)
	if len(lines) == 0 {
		return
	}

	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorBrightWhite
		}
		dst.DrawTextColored(box.X+(w-len([]rune(l)))/2, box.Y+1+i, l, c)
	}
}

func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	dst.DrawTextColored((dst.Width()-len([]rune(text)))/2, y, text, c)
}
