package ballsort

// DefaultCapacity is the most balls a compartment can hold.
const DefaultCapacity = 5

// dealWidth is the number of balls per filled compartment the deal aims for.
const dealWidth = 4

// Shuffler is the random source used to deal. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Puzzle holds the compartments and their ball stacks.
// The top of a stack is its last element. Puzzle never stores screen
// positions; layout is the renderer's job.
type Puzzle struct {
	stacks   [][]Color
	capacity int
}

// NewPuzzle creates a puzzle from explicit stacks (bottom first).
// Capacity values below 1 fall back to DefaultCapacity.
func NewPuzzle(stacks [][]Color, capacity int) *Puzzle {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	p := &Puzzle{
		stacks:   make([][]Color, len(stacks)),
		capacity: capacity,
	}
	for i, s := range stacks {
		p.stacks[i] = append([]Color(nil), s...)
	}
	return p
}

// Deal shuffles the level's balls and spreads them round-robin over
// min(compartments-1, ceil(total/4)) compartments, leaving the rest empty.
// The deal is not checked for solvability.
func Deal(level Level, capacity int, rng Shuffler) *Puzzle {
	balls := make([]Color, 0, level.TotalBalls())
	for _, c := range level.Colors {
		for range level.BallsPerColor {
			balls = append(balls, c)
		}
	}

	rng.Shuffle(len(balls), func(i, j int) {
		balls[i], balls[j] = balls[j], balls[i]
	})

	filled := FilledCompartments(level)
	stacks := make([][]Color, level.Compartments)
	for i, ball := range balls {
		stacks[i%filled] = append(stacks[i%filled], ball)
	}

	return NewPuzzle(stacks, capacity)
}

// FilledCompartments returns how many compartments Deal puts balls into.
func FilledCompartments(level Level) int {
	total := level.TotalBalls()
	filled := (total + dealWidth - 1) / dealWidth
	if filled > level.Compartments-1 {
		filled = level.Compartments - 1
	}
	if filled < 1 {
		filled = 1
	}
	return filled
}

// CanAccept reports whether a compartment holding stack may take a ball of
// color: it must be empty, or uniformly that color with room to spare.
func CanAccept(stack []Color, color Color, capacity int) bool {
	if len(stack) == 0 {
		return true
	}
	if len(stack) >= capacity {
		return false
	}
	for _, c := range stack {
		if c != color {
			return false
		}
	}
	return true
}

// Len returns the number of compartments.
func (p *Puzzle) Len() int {
	return len(p.stacks)
}

// Capacity returns the per-compartment ball limit.
func (p *Puzzle) Capacity() int {
	return p.capacity
}

func (p *Puzzle) valid(i int) bool {
	return i >= 0 && i < len(p.stacks)
}

// Size returns the number of balls in compartment i, or 0 if i is invalid.
func (p *Puzzle) Size(i int) int {
	if !p.valid(i) {
		return 0
	}
	return len(p.stacks[i])
}

// Top returns the top ball of compartment i.
func (p *Puzzle) Top(i int) (Color, bool) {
	if !p.valid(i) || len(p.stacks[i]) == 0 {
		return 0, false
	}
	s := p.stacks[i]
	return s[len(s)-1], true
}

// Compartment returns a copy of compartment i's stack, bottom first.
func (p *Puzzle) Compartment(i int) []Color {
	if !p.valid(i) {
		return nil
	}
	return append([]Color(nil), p.stacks[i]...)
}

// Compartments returns copies of every stack in order.
func (p *Puzzle) Compartments() [][]Color {
	out := make([][]Color, len(p.stacks))
	for i := range p.stacks {
		out[i] = p.Compartment(i)
	}
	return out
}

// CanRemove reports whether compartment i has a ball to take.
func (p *Puzzle) CanRemove(i int) bool {
	return p.Size(i) > 0
}

// CanAdd reports whether compartment i can take a ball of the given color.
func (p *Puzzle) CanAdd(i int, color Color) bool {
	if !p.valid(i) {
		return false
	}
	return CanAccept(p.stacks[i], color, p.capacity)
}

// Move transfers the top ball of src onto dst.
// An unacceptable target yields *IllegalMoveError and leaves the puzzle unchanged.
func (p *Puzzle) Move(src, dst int) error {
	if !p.valid(src) || !p.valid(dst) {
		return ErrNoSuchCompartment
	}
	if src == dst {
		return ErrSameCompartment
	}
	color, ok := p.Top(src)
	if !ok {
		return ErrEmptyCompartment
	}
	if !p.CanAdd(dst, color) {
		return &IllegalMoveError{From: src, To: dst, Color: color}
	}

	p.stacks[src] = p.stacks[src][:len(p.stacks[src])-1]
	p.stacks[dst] = append(p.stacks[dst], color)
	return nil
}

// IsSolved reports whether every compartment is empty or holds exactly
// ballsPerColor balls of a single color.
func (p *Puzzle) IsSolved(ballsPerColor int) bool {
	for _, s := range p.stacks {
		if len(s) == 0 {
			continue
		}
		if len(s) != ballsPerColor || !uniform(s) {
			return false
		}
	}
	return true
}

// IsStuck reports whether no compartment is empty and no top ball can move
// to any other compartment.
func (p *Puzzle) IsStuck() bool {
	for _, s := range p.stacks {
		if len(s) == 0 {
			return false
		}
	}
	for src := range p.stacks {
		color, _ := p.Top(src)
		for dst := range p.stacks {
			if src == dst {
				continue
			}
			if p.CanAdd(dst, color) {
				return false
			}
		}
	}
	return true
}

// LegalTargets returns the compartments that can take src's top ball.
func (p *Puzzle) LegalTargets(src int) []int {
	color, ok := p.Top(src)
	if !ok {
		return nil
	}
	var targets []int
	for dst := range p.stacks {
		if dst != src && p.CanAdd(dst, color) {
			targets = append(targets, dst)
		}
	}
	return targets
}

// ColorCounts returns how many balls of each color are in the puzzle.
func (p *Puzzle) ColorCounts() map[Color]int {
	counts := make(map[Color]int)
	for _, s := range p.stacks {
		for _, c := range s {
			counts[c]++
		}
	}
	return counts
}

// TotalBalls returns the number of balls across all compartments.
func (p *Puzzle) TotalBalls() int {
	total := 0
	for _, s := range p.stacks {
		total += len(s)
	}
	return total
}

// Clone returns a deep copy of the puzzle.
func (p *Puzzle) Clone() *Puzzle {
	return NewPuzzle(p.stacks, p.capacity)
}

func uniform(s []Color) bool {
	for _, c := range s[1:] {
		if c != s[0] {
			return false
		}
	}
	return true
}
