package ballsort

import "time"

// Snapshot is a read-only view of a session for rendering and tests.
type Snapshot struct {
	Tick           uint64 // Game ticks since Reset; 0 for a bare session
	Mode           string
	Level          int
	LevelName      string
	Levels         int
	Compartments   [][]Color // Bottom first
	Capacity       int
	Status         Status
	Reason         Reason
	Moves          int
	MoveLimit      int // 0 = unlimited
	MovesRemaining int // -1 when unlimited
	Elapsed        time.Duration
	Remaining      time.Duration
	CompletionTime time.Duration
	Lives          int
	LivesEnabled   bool
	Held           int // Source compartment of the held ball, -1 if none
	Cursor         int
	Score          int
	HasNextLevel   bool
	Paused         bool
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Level:          s.level.Number,
		LevelName:      s.level.Name,
		Levels:         s.catalog.Count(),
		Capacity:       s.rules.Capacity,
		Status:         s.status,
		Reason:         s.reason,
		Moves:          s.moves,
		MoveLimit:      s.level.MoveLimit,
		MovesRemaining: s.MovesRemaining(),
		Elapsed:        s.elapsed,
		Remaining:      s.Remaining(),
		CompletionTime: s.completion,
		Lives:          s.lives,
		LivesEnabled:   s.rules.LivesEnabled,
		Held:           s.held,
		Score:          s.score,
		HasNextLevel:   s.HasNextLevel(),
	}
	if s.puzzle != nil {
		snap.Compartments = s.puzzle.Compartments()
	}
	return snap
}

// Snapshot returns the session snapshot plus the adapter's own state.
func (g *Game) Snapshot() Snapshot {
	snap := g.session.Snapshot()
	snap.Tick = g.tick
	snap.Mode = string(g.mode)
	snap.Cursor = g.cursor
	snap.Paused = g.paused
	return snap
}
