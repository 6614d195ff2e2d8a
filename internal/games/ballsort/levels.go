// Package ballsort implements the ball sort puzzle: a level catalog, the
// compartment puzzle state, and the session state machine that drives an
// attempt from deal to win or failure.
package ballsort

import "fmt"

// Level defines one campaign level. Levels are immutable once in a catalog.
type Level struct {
	Number        int     // 1-based position in the catalog
	Name          string  // Display name
	Colors        []Color // Distinct ball colors in deal order
	BallsPerColor int     // Balls of each color
	Compartments  int     // Total compartments, including the empty ones
	MoveLimit     int     // Maximum moves; 0 means unlimited
}

// TotalBalls returns the number of balls dealt for this level.
func (l Level) TotalBalls() int {
	return len(l.Colors) * l.BallsPerColor
}

// HasMoveLimit reports whether the level caps the number of moves.
func (l Level) HasMoveLimit() bool {
	return l.MoveLimit > 0
}

// Validate checks that the level can be dealt.
func (l Level) Validate() error {
	if len(l.Colors) == 0 {
		return fmt.Errorf("level %d: no colors", l.Number)
	}
	seen := make(map[Color]bool, len(l.Colors))
	for _, c := range l.Colors {
		if !c.Valid() {
			return fmt.Errorf("level %d: invalid color %d", l.Number, c)
		}
		if seen[c] {
			return fmt.Errorf("level %d: duplicate color %s", l.Number, c)
		}
		seen[c] = true
	}
	if l.BallsPerColor < 1 {
		return fmt.Errorf("level %d: balls per color must be at least 1", l.Number)
	}
	if l.Compartments < 2 {
		return fmt.Errorf("level %d: need at least 2 compartments", l.Number)
	}
	if l.MoveLimit < 0 {
		return fmt.Errorf("level %d: negative move limit", l.Number)
	}
	return nil
}

// Catalog is an ordered list of levels, addressed 1..N.
type Catalog struct {
	levels []Level
}

// NewCatalog validates the given levels and numbers them in order.
func NewCatalog(levels []Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("ballsort: catalog has no levels")
	}
	numbered := make([]Level, len(levels))
	for i, lvl := range levels {
		lvl.Number = i + 1
		lvl.Colors = append([]Color(nil), lvl.Colors...)
		if lvl.Name == "" {
			lvl.Name = fmt.Sprintf("Level %d", lvl.Number)
		}
		if err := lvl.Validate(); err != nil {
			return nil, fmt.Errorf("ballsort: %w", err)
		}
		numbered[i] = lvl
	}
	return &Catalog{levels: numbered}, nil
}

// DefaultLevels are the five built-in levels.
var DefaultLevels = []Level{
	{Name: "Three of a Kind", Colors: []Color{Red, Blue, Yellow}, BallsPerColor: 2, Compartments: 4},
	{Name: "Four Square", Colors: []Color{Red, Blue, Yellow, Purple}, BallsPerColor: 2, Compartments: 5},
	{Name: "Tall Stacks", Colors: []Color{Red, Blue, Yellow, Purple}, BallsPerColor: 3, Compartments: 5},
	{Name: "Counting Moves", Colors: []Color{Red, Blue, Yellow, Purple, Orange}, BallsPerColor: 3, Compartments: 6, MoveLimit: 30},
	{Name: "Full Spectrum", Colors: []Color{Red, Blue, Yellow, Purple, Orange, Cyan}, BallsPerColor: 4, Compartments: 7, MoveLimit: 40},
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultLevels)
	if err != nil {
		panic(err) // built-in levels are valid
	}
	return c
}

// Count returns the number of levels.
func (c *Catalog) Count() int {
	return len(c.levels)
}

// Get returns the level with the given 1-based number.
func (c *Catalog) Get(number int) (Level, error) {
	if number < 1 || number > len(c.levels) {
		return Level{}, &OutOfRangeError{Level: number, Count: len(c.levels)}
	}
	lvl := c.levels[number-1]
	lvl.Colors = append([]Color(nil), lvl.Colors...)
	return lvl, nil
}

// CheckCapacity reports the first level that cannot be won when a
// compartment holds at most capacity balls.
func (c *Catalog) CheckCapacity(capacity int) error {
	for _, lvl := range c.levels {
		if lvl.BallsPerColor > capacity {
			return fmt.Errorf("ballsort: level %d: %d balls per color exceed capacity %d",
				lvl.Number, lvl.BallsPerColor, capacity)
		}
	}
	return nil
}

// Levels returns a copy of all levels in order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	for i := range c.levels {
		out[i], _ = c.Get(i + 1)
	}
	return out
}
