package ballsort

import (
	"errors"
	"time"
)

// DefaultTimeLimit is how long an attempt may last.
const DefaultTimeLimit = 180 * time.Second

// Status is the session's position in the attempt lifecycle.
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusWon
	StatusTimeUp
	StatusStuck
	StatusMoveLimitExceeded
)

// String returns a stable name for the status, used in logs and storage.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusTimeUp:
		return "time_up"
	case StatusStuck:
		return "stuck"
	case StatusMoveLimitExceeded:
		return "move_limit_exceeded"
	default:
		return "unknown"
	}
}

// Terminal reports whether play cannot continue without a reset action.
func (s Status) Terminal() bool {
	return s >= StatusWon
}

// Failed reports whether the attempt ended without a win.
func (s Status) Failed() bool {
	return s.Terminal() && s != StatusWon
}

// Reason explains a Stuck status.
type Reason int

const (
	ReasonNone        Reason = iota
	ReasonNoMoves            // no legal move remains
	ReasonIllegalDrop        // a ball was dropped where it could not go
)

// String returns a stable name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNoMoves:
		return "no_moves"
	case ReasonIllegalDrop:
		return "illegal_drop"
	default:
		return ""
	}
}

// Rules are the session-wide settings that do not vary by level.
type Rules struct {
	Capacity      int           // Max balls per compartment
	TimeLimit     time.Duration // Attempt time limit
	LivesEnabled  bool          // Whether lives are tracked at all
	StartingLives int           // Lives at session start
	WinBonusLives int           // Lives awarded per won level
}

// DefaultRules returns the classic rules: capacity 5, 180 seconds, no lives.
func DefaultRules() Rules {
	return Rules{
		Capacity:  DefaultCapacity,
		TimeLimit: DefaultTimeLimit,
	}
}

// Session drives one play session: deal, moves, timer, lives and the
// Ready -> Playing -> terminal transitions. It is not safe for concurrent use.
type Session struct {
	catalog *Catalog
	rules   Rules
	rng     Shuffler

	level      Level
	puzzle     *Puzzle
	status     Status
	reason     Reason
	moves      int
	elapsed    time.Duration
	completion time.Duration
	score      int
	lives      int
	held       int // source compartment of the held ball, -1 if none
}

// NewSession creates a session in the Ready state.
func NewSession(catalog *Catalog, rules Rules, rng Shuffler) *Session {
	if rules.Capacity < 1 {
		rules.Capacity = DefaultCapacity
	}
	if rules.TimeLimit <= 0 {
		rules.TimeLimit = DefaultTimeLimit
	}
	s := &Session{
		catalog: catalog,
		rules:   rules,
		rng:     rng,
		status:  StatusReady,
		held:    -1,
	}
	if rules.LivesEnabled {
		s.lives = rules.StartingLives
	}
	return s
}

// Start deals the given level and begins play.
func (s *Session) Start(number int) error {
	level, err := s.catalog.Get(number)
	if err != nil {
		return err
	}
	s.deal(level)
	return nil
}

// deal resets per-attempt state and enters Playing with a fresh puzzle.
func (s *Session) deal(level Level) {
	s.level = level
	s.puzzle = Deal(level, s.rules.Capacity, s.rng)
	s.status = StatusPlaying
	s.reason = ReasonNone
	s.moves = 0
	s.elapsed = 0
	s.completion = 0
	s.score = 0
	s.held = -1
}

// PickUp marks the top ball of compartment i as held.
// Invalid indices, empty compartments, or an existing hold are no-ops.
func (s *Session) PickUp(i int) (Color, bool) {
	if s.status != StatusPlaying || s.held >= 0 {
		return 0, false
	}
	color, ok := s.puzzle.Top(i)
	if !ok {
		return 0, false
	}
	s.held = i
	return color, true
}

// Drop places the held ball onto compartment i.
// Dropping outside any compartment or back onto the source cancels the hold.
// An illegal target ends the attempt and returns *IllegalMoveError.
func (s *Session) Drop(i int) error {
	if s.status != StatusPlaying {
		return ErrNotPlaying
	}
	src := s.held
	if src < 0 {
		return nil
	}
	s.held = -1
	if i < 0 || i >= s.puzzle.Len() || i == src {
		return nil
	}
	return s.ApplyMove(src, i)
}

// Cancel releases the held ball without moving it.
func (s *Session) Cancel() {
	s.held = -1
}

// ApplyMove moves the top ball of src onto dst and counts one move.
// If dst cannot take the ball the attempt ends as Stuck (illegal drop)
// with the move counter unchanged.
func (s *Session) ApplyMove(src, dst int) error {
	if s.status != StatusPlaying {
		return ErrNotPlaying
	}
	err := s.puzzle.Move(src, dst)
	var illegal *IllegalMoveError
	switch {
	case err == nil:
		s.moves++
		return nil
	case errors.As(err, &illegal):
		s.held = -1
		s.status = StatusStuck
		s.reason = ReasonIllegalDrop
		return err
	default:
		return err
	}
}

// Tick records the time elapsed since the attempt began and evaluates the
// end conditions in order: win, time limit, stuck, move limit.
func (s *Session) Tick(elapsed time.Duration) Status {
	if s.status != StatusPlaying {
		return s.status
	}
	if elapsed > s.elapsed {
		s.elapsed = elapsed
	}

	switch {
	case s.puzzle.IsSolved(s.level.BallsPerColor):
		s.status = StatusWon
		s.completion = s.elapsed
		s.score = s.winScore()
		if s.rules.LivesEnabled {
			s.lives += s.rules.WinBonusLives
		}
	case s.elapsed >= s.rules.TimeLimit:
		s.status = StatusTimeUp
	case s.puzzle.IsStuck():
		s.status = StatusStuck
		s.reason = ReasonNoMoves
	case s.level.HasMoveLimit() && s.moves >= s.level.MoveLimit:
		s.status = StatusMoveLimitExceeded
	}

	if s.status.Terminal() {
		s.held = -1
	}
	return s.status
}

// winScore rewards the level number, unused time and unused moves.
func (s *Session) winScore() int {
	score := s.level.Number*100 + int(s.Remaining()/time.Second)
	if s.level.HasMoveLimit() {
		score += s.MovesRemaining() * 5
	}
	return score
}

// Restart re-deals the current level. Lives are unchanged.
func (s *Session) Restart() error {
	if s.status == StatusReady {
		return ErrNotPlaying
	}
	s.deal(s.level)
	return nil
}

// HasNextLevel reports whether the catalog has a level after the current one.
func (s *Session) HasNextLevel() bool {
	return s.status != StatusReady && s.level.Number < s.catalog.Count()
}

// AdvanceLevel deals the next level after a win.
// Past the last level it returns *OutOfRangeError.
func (s *Session) AdvanceLevel() error {
	if s.status != StatusWon {
		return ErrNotWon
	}
	next, err := s.catalog.Get(s.level.Number + 1)
	if err != nil {
		return err
	}
	s.deal(next)
	return nil
}

// UseLife spends one life to re-deal a failed level.
func (s *Session) UseLife() error {
	if !s.rules.LivesEnabled {
		return ErrLivesDisabled
	}
	if !s.status.Failed() {
		return ErrNotFailed
	}
	if s.lives <= 0 {
		return ErrNoLives
	}
	s.lives--
	s.deal(s.level)
	return nil
}

// Status returns the current lifecycle status.
func (s *Session) Status() Status {
	return s.status
}

// Reason returns why the attempt is Stuck, if it is.
func (s *Session) Reason() Reason {
	return s.reason
}

// Level returns the level being played.
func (s *Session) Level() Level {
	return s.level
}

// Catalog returns the level catalog.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Rules returns the session rules.
func (s *Session) Rules() Rules {
	return s.rules
}

// Puzzle returns a copy of the current puzzle, or nil before Start.
func (s *Session) Puzzle() *Puzzle {
	if s.puzzle == nil {
		return nil
	}
	return s.puzzle.Clone()
}

// Moves returns the number of moves made this attempt.
func (s *Session) Moves() int {
	return s.moves
}

// MovesRemaining returns the moves left under the level's limit, or -1 if
// the level has none.
func (s *Session) MovesRemaining() int {
	if !s.level.HasMoveLimit() {
		return -1
	}
	return max(0, s.level.MoveLimit-s.moves)
}

// Elapsed returns the attempt time recorded by the last Tick.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Remaining returns the time left before the limit.
func (s *Session) Remaining() time.Duration {
	return max(0, s.rules.TimeLimit-s.elapsed)
}

// CompletionTime returns how long the won attempt took.
func (s *Session) CompletionTime() time.Duration {
	return s.completion
}

// Score returns the score of the current attempt; 0 unless it was won.
func (s *Session) Score() int {
	return s.score
}

// Lives returns the lives remaining.
func (s *Session) Lives() int {
	return s.lives
}

// Held returns the compartment whose top ball is held.
func (s *Session) Held() (int, bool) {
	return s.held, s.held >= 0
}
