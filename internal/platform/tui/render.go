package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ballsort/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:         "196",
	core.ColorGreen:       "46",
	core.ColorYellow:      "226",
	core.ColorBlue:        "33",
	core.ColorMagenta:     "135",
	core.ColorCyan:        "51",
	core.ColorWhite:       "7",
	core.ColorOrange:      "208",
	core.ColorGray:        "245",
	core.ColorBrightWhite: "15",
}

// Palette holds one lipgloss style per screen color.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the styles with the given renderer. SSH sessions pass
// their own renderer so color support is detected on the client terminal;
// nil uses the process default.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := Palette{core.ColorDefault: r.NewStyle()}
	for c, code := range colorCodes {
		p[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	p[core.ColorBrightWhite] = p[core.ColorBrightWhite].Bold(true)
	return p
}

// style returns the style for c, falling back to the default style.
func (p Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return p[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
