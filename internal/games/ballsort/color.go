package ballsort

import "strings"

// Color identifies a ball color. Balls of the same color are interchangeable.
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
	Purple
	Orange
	Cyan
	Green
	colorCount // Sentinel value for iteration
)

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	case Orange:
		return "orange"
	case Cyan:
		return "cyan"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// Char returns a single character for plain-text output.
func (c Color) Char() rune {
	switch c {
	case Red:
		return 'R'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	case Purple:
		return 'P'
	case Orange:
		return 'O'
	case Cyan:
		return 'C'
	case Green:
		return 'G'
	default:
		return '?'
	}
}

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	return c < colorCount
}

// ParseColor converts a name or single-letter code to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	case "yellow", "y":
		return Yellow, true
	case "purple", "p":
		return Purple, true
	case "orange", "o":
		return Orange, true
	case "cyan", "c":
		return Cyan, true
	case "green", "g":
		return Green, true
	default:
		return Red, false
	}
}

// Palette returns every color in palette order.
func Palette() []Color {
	colors := make([]Color, 0, colorCount)
	for c := Color(0); c < colorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}
