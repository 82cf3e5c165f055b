package game

import (
	"math/rand"

	"github.com/leonVoyt/snake-game/pkg/config"
)

// Chain is the snake: an ordered run of segments (index 0 = head) trailing
// a virtual lead cursor that sits one step ahead of the head.
type Chain struct {
	segments []Segment
	cursor   Segment

	direction Direction
	lastStep  Direction // direction of the most recent cursor advance

	elapsed      float64
	stepDuration float64
	steps        int

	fast    bool
	dontDie bool
	walls   bool
	paused  bool

	// heads GrowHead stacked on the current head cell since the last
	// logical step; indices 1..stacked share the head's cell
	stacked int

	obstacles []Cell
	nextID    int
	rng       *rand.Rand
}

// NewChain returns an uninitialized chain; Reset makes it ready
func NewChain(rng *rand.Rand) *Chain {
	return &Chain{
		direction:    Right,
		lastStep:     Right,
		stepDuration: config.StepDuration,
		cursor:       Segment{follow: leadCursor},
		rng:          rng,
	}
}

// SetFlags applies the mode flags
func (c *Chain) SetFlags(fast, dontDie, walls bool) {
	c.fast = fast
	c.dontDie = dontDie
	c.walls = walls
}

// Reset rebuilds a straight body of length segments on row 0 heading right
func (c *Chain) Reset(length int) {
	if length < 1 {
		length = config.DefaultLength
	}

	c.segments = c.segments[:0]
	for i := 0; i < length; i++ {
		seg := c.newSegment(0, length-i-1)
		c.segments = append(c.segments, seg)
	}
	c.relink()
	c.cursor.SetPosition(0, length)

	c.direction = Right
	c.lastStep = Right
	c.elapsed = 0
	c.stepDuration = config.StepDuration
	c.steps = 0
	c.paused = false
	c.stacked = 0
	c.obstacles = nil
}

func (c *Chain) newSegment(row, col int) Segment {
	seg := Segment{ID: c.nextID}
	c.nextID++
	seg.SetPosition(row, col)
	seg.resetVisual(c.rng)
	return seg
}

// relink points every segment at its head-ward neighbour and the head at
// the lead cursor
func (c *Chain) relink() {
	for i := range c.segments {
		c.segments[i].follow = i - 1
	}
	if len(c.segments) > 0 {
		c.segments[0].follow = leadCursor
	}
}

// target returns the segment that segment i follows
func (c *Chain) target(i int) *Segment {
	f := c.segments[i].follow
	if f == leadCursor {
		return &c.cursor
	}
	return &c.segments[f]
}

// SetDirection changes the heading for the next cursor advance. Reversals
// of the current heading, or of the heading the chain last stepped in, are
// ignored. Rejecting the last stepped heading is a deliberate change from
// the original game, which accepted two quick turns inside one step and
// could fold the head back onto the body.
func (c *Chain) SetDirection(d Direction) bool {
	if !d.Valid() {
		return false
	}
	if d == c.direction.Opposite() || d == c.lastStep.Opposite() {
		return false
	}
	c.direction = d
	return true
}

// ReverseDirection flips the heading without the reversal check
func (c *Chain) ReverseDirection() {
	c.direction = c.direction.Opposite()
}

// Update advances the step timer by dt seconds, interpolates every segment
// and performs a logical step when the boundary is reached. It reports
// whether a step happened.
func (c *Chain) Update(dt float64) bool {
	if c.paused || len(c.segments) == 0 {
		return false
	}

	c.elapsed += dt
	for i := range c.segments {
		c.segments[i].interpolate(c.target(i).Anchor, c.elapsed, c.stepDuration)
	}

	if c.stepDuration-c.elapsed < config.StepEpsilon {
		c.elapsed = 0
		c.step()
		return true
	}
	return false
}

// step moves every segment onto its follow target, tail first so each one
// reads its target before the target moves, then the head, then advances
// the lead cursor.
func (c *Chain) step() {
	for i := len(c.segments) - 1; i > 0; i-- {
		c.segments[i].adoptFollowTarget(c.target(i).Cell)
	}
	c.segments[0].adoptFollowTarget(c.cursor.Cell)
	c.stacked = 0

	c.advanceCursor()
	c.steps++
}

func (c *Chain) advanceCursor() {
	d := c.direction.Delta()
	row := c.cursor.Cell.Row + d.Row
	col := c.cursor.Cell.Col + d.Col

	if c.dontDie {
		row = wrap(row, config.Rows)
		col = wrap(col, config.Columns)
	}

	c.cursor.SetPosition(row, col)
	c.lastStep = c.direction
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// GrowHead inserts a new head at (row, col). The former head now follows
// the new head and the new head follows the lead cursor.
func (c *Chain) GrowHead(row, col int) {
	seg := c.newSegment(row, col)
	c.segments = append([]Segment{seg}, c.segments...)
	c.relink()
	if len(c.segments) > 1 && c.segments[1].Cell == seg.Cell {
		c.stacked++
	} else {
		c.stacked = 0
	}

	if c.fast {
		c.stepDuration *= config.SpeedUpFactor
	}
}

// GrowTail appends a segment on the tail's cell that follows the old tail
func (c *Chain) GrowTail() {
	if len(c.segments) == 0 {
		return
	}
	last := len(c.segments) - 1
	tail := c.segments[last].Cell

	seg := c.newSegment(tail.Row, tail.Col)
	seg.follow = last
	c.segments = append(c.segments, seg)
}

// AddObstacle places a wall cell
func (c *Chain) AddObstacle(cell Cell) {
	c.obstacles = append(c.obstacles, cell)
}

// TestSelfCollision reports whether the head left the board, hit another
// segment or hit an obstacle. Heads stacked on the head cell by GrowHead
// since the last step are not a collision.
func (c *Chain) TestSelfCollision() bool {
	if len(c.segments) == 0 {
		return false
	}
	head := c.segments[0].Cell

	if !inBounds(head) {
		return true
	}

	for i := 1; i < len(c.segments); i++ {
		if i <= c.stacked {
			continue
		}
		if c.segments[i].Cell == head {
			return true
		}
	}

	for _, wall := range c.obstacles {
		if wall == head {
			return true
		}
	}
	return false
}

func inBounds(p Cell) bool {
	return p.Row >= 0 && p.Row < config.Rows && p.Col >= 0 && p.Col < config.Columns
}

// SetPaused freezes or unfreezes the chain
func (c *Chain) SetPaused(paused bool) {
	c.paused = paused
}

// Paused reports whether updates are frozen
func (c *Chain) Paused() bool {
	return c.paused
}

// Len returns the number of body segments
func (c *Chain) Len() int {
	return len(c.segments)
}

// Head returns the head cell
func (c *Chain) Head() Cell {
	if len(c.segments) == 0 {
		return Cell{}
	}
	return c.segments[0].Cell
}

// Cursor returns the lead cursor cell
func (c *Chain) Cursor() Cell {
	return c.cursor.Cell
}

// Direction returns the current heading
func (c *Chain) Direction() Direction {
	return c.direction
}

// StepDuration returns the seconds per logical step
func (c *Chain) StepDuration() float64 {
	return c.stepDuration
}

// Elapsed returns the time accumulated in the current step
func (c *Chain) Elapsed() float64 {
	return c.elapsed
}

// Steps returns the number of logical steps since the last reset
func (c *Chain) Steps() int {
	return c.steps
}

// Body returns the segment cells, head first
func (c *Chain) Body() []Cell {
	cells := make([]Cell, len(c.segments))
	for i, s := range c.segments {
		cells[i] = s.Cell
	}
	return cells
}

// Positions returns the interpolated segment positions, head first
func (c *Chain) Positions() []Vec {
	pos := make([]Vec, len(c.segments))
	for i, s := range c.segments {
		pos[i] = s.Pos
	}
	return pos
}

// Segments returns a copy of the body segments, head first
func (c *Chain) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Obstacles returns a copy of the wall cells
func (c *Chain) Obstacles() []Cell {
	out := make([]Cell, len(c.obstacles))
	copy(out, c.obstacles)
	return out
}
