package game

import (
	"math"
	"math/rand"

	"github.com/leonVoyt/snake-game/pkg/config"
)

// leadCursor is the follow index of a segment that trails the lead cursor
const leadCursor = -1

// Segment is one body unit of a chain. It keeps its logical cell, the
// continuous anchor of that cell at the start of the current step, and the
// index of the segment it follows (one position closer to the head).
type Segment struct {
	ID       int     `json:"id"`
	Cell     Cell    `json:"cell"`
	Anchor   Vec     `json:"anchor"`
	Pos      Vec     `json:"pos"`
	Rotation float64 `json:"rotation"`

	follow int
}

// cellCenter maps a grid cell to the continuous center of its block
func cellCenter(row, col int) Vec {
	return Vec{
		X: float64(col)*config.BlockSize + config.BlockSize*0.5,
		Y: float64(row)*config.BlockSize + config.BlockSize*0.5,
	}
}

// SetPosition places the segment on a cell and snaps its anchor and
// interpolated position to the cell center
func (s *Segment) SetPosition(row, col int) {
	s.Cell = Cell{Row: row, Col: col}
	s.Anchor = cellCenter(row, col)
	s.Pos = s.Anchor
}

// interpolate moves Pos from the anchor toward the target anchor by the
// fraction of the step that has elapsed. Elapsed may slightly overshoot the
// step duration; the result is not clamped.
func (s *Segment) interpolate(target Vec, elapsed, stepDuration float64) {
	dx := shortestDelta(target.X-s.Anchor.X, config.Columns*config.BlockSize)
	dy := shortestDelta(target.Y-s.Anchor.Y, config.Rows*config.BlockSize)

	t := elapsed / stepDuration
	s.Pos = Vec{
		X: s.Anchor.X + t*dx,
		Y: s.Anchor.Y + t*dy,
	}
}

// shortestDelta takes the path across the board edge when the direct one
// is longer than half the board
func shortestDelta(d, span float64) float64 {
	if math.Abs(d) > span/2 {
		if d > 0 {
			return d - span
		}
		return d + span
	}
	return d
}

// adoptFollowTarget moves the segment onto the cell of its follow target
func (s *Segment) adoptFollowTarget(target Cell) {
	s.SetPosition(target.Row, target.Col)
}

// resetVisual randomizes the cosmetic rotation
func (s *Segment) resetVisual(rng *rand.Rand) {
	s.Rotation = rng.Float64() * 2 * math.Pi
}
