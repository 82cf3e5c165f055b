package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/leonVoyt/snake-game/pkg/config"
)

func newTestChain(t *testing.T) *Chain {
	t.Helper()
	c := NewChain(rand.New(rand.NewSource(1)))
	c.Reset(config.DefaultLength)
	return c
}

// stepOnce feeds exactly one step duration into the chain
func stepOnce(t *testing.T, c *Chain) {
	t.Helper()
	if !c.Update(c.StepDuration()) {
		t.Fatalf("expected a logical step after %.3fs", c.StepDuration())
	}
}

func equalCells(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// followID returns the ID of the segment that segment i follows, -1 for the lead cursor
func followID(c *Chain, i int) int {
	f := c.segments[i].follow
	if f == leadCursor {
		return -1
	}
	return c.segments[f].ID
}

// TestChainReset tests the initial body layout and its idempotence
func TestChainReset(t *testing.T) {
	c := newTestChain(t)
	want := []Cell{{0, 2}, {0, 1}, {0, 0}}

	if !equalCells(c.Body(), want) {
		t.Fatalf("Expected body %v, got %v", want, c.Body())
	}
	if c.Direction() != Right {
		t.Errorf("Expected direction Right, got %v", c.Direction())
	}
	if c.Cursor() != (Cell{0, 3}) {
		t.Errorf("Expected lead cursor at (0,3), got %v", c.Cursor())
	}

	// Mess the chain up, then reset again
	c.SetFlags(true, false, false)
	c.GrowHead(5, 5)
	c.GrowTail()
	c.SetDirection(Down)
	c.AddObstacle(Cell{7, 7})
	stepOnce(t, c)
	c.Update(0.03)
	c.SetPaused(true)

	c.Reset(config.DefaultLength)

	if !equalCells(c.Body(), want) {
		t.Errorf("Expected body %v after second reset, got %v", want, c.Body())
	}
	if c.Direction() != Right {
		t.Errorf("Expected direction Right after reset, got %v", c.Direction())
	}
	if c.StepDuration() != config.StepDuration {
		t.Errorf("Expected step duration %.3f, got %.3f", config.StepDuration, c.StepDuration())
	}
	if c.Elapsed() != 0 || c.Paused() || len(c.Obstacles()) != 0 {
		t.Errorf("Expected cleared timer, pause and obstacles; got elapsed=%f paused=%v obstacles=%v",
			c.Elapsed(), c.Paused(), c.Obstacles())
	}
	if followID(c, 0) != -1 {
		t.Errorf("Expected head to follow the lead cursor")
	}
	for i := 1; i < c.Len(); i++ {
		if followID(c, i) != c.segments[i-1].ID {
			t.Errorf("Segment %d should follow segment %d", i, i-1)
		}
	}
}

// TestChainUninitialized tests that an unreset chain ignores updates
func TestChainUninitialized(t *testing.T) {
	c := NewChain(rand.New(rand.NewSource(1)))
	if c.Update(1) {
		t.Error("Uninitialized chain should not step")
	}
	if c.TestSelfCollision() {
		t.Error("Uninitialized chain should not collide")
	}
}

// TestChainStepsOnlyAtBoundary tests that the head advances whole cells only
func TestChainStepsOnlyAtBoundary(t *testing.T) {
	c := newTestChain(t)

	if c.Update(0.05) {
		t.Fatal("Step fired halfway through the step duration")
	}
	if c.Head() != (Cell{0, 2}) {
		t.Fatalf("Head moved before the boundary: %v", c.Head())
	}

	if !c.Update(0.05) {
		t.Fatal("Step did not fire at the boundary")
	}
	want := []Cell{{0, 3}, {0, 2}, {0, 1}}
	if !equalCells(c.Body(), want) {
		t.Errorf("Expected body %v, got %v", want, c.Body())
	}
	if c.Cursor() != (Cell{0, 4}) {
		t.Errorf("Expected lead cursor at (0,4), got %v", c.Cursor())
	}
	if c.Elapsed() != 0 {
		t.Errorf("Expected the step timer to restart, got %f", c.Elapsed())
	}

	// 0.015s short of the boundary is still outside the epsilon
	if c.Update(0.085) {
		t.Error("Step fired 0.015s before the boundary")
	}
	// 0.009s short is inside it
	if !c.Update(0.006) {
		t.Error("Step did not fire 0.009s before the boundary")
	}
}

// TestChainFrameDriven tests stepping with 60 FPS frame deltas
func TestChainFrameDriven(t *testing.T) {
	c := newTestChain(t)
	frame := (time.Second / 60).Seconds()

	steps := 0
	for i := 0; i < 60; i++ {
		if c.Update(frame) {
			steps++
		}
	}

	if steps != 10 {
		t.Errorf("Expected 10 steps in one second, got %d", steps)
	}
	if c.Head() != (Cell{0, 12}) {
		t.Errorf("Expected head at (0,12), got %v", c.Head())
	}
	if c.Steps() != steps {
		t.Errorf("Step counter %d disagrees with observed steps %d", c.Steps(), steps)
	}
}

// TestSetDirectionRejectsReverse tests that reversals are ignored
func TestSetDirectionRejectsReverse(t *testing.T) {
	c := newTestChain(t)

	if c.SetDirection(Left) {
		t.Error("Reverse of Right should be rejected")
	}
	if c.Direction() != Right {
		t.Fatalf("Direction changed to %v after rejected reversal", c.Direction())
	}

	if !c.SetDirection(Up) {
		t.Fatal("Up should be accepted while moving Right")
	}
	if c.SetDirection(Down) {
		t.Error("Reverse of the pending direction should be rejected")
	}
	// Still stepping Right until the next boundary
	if c.SetDirection(Left) {
		t.Error("Reverse of the last stepped direction should be rejected")
	}
	if c.Direction() != Up {
		t.Errorf("Expected Up to remain, got %v", c.Direction())
	}

	stepOnce(t, c)
	if !c.SetDirection(Left) {
		t.Error("Left should be accepted once the chain stepped Up")
	}

	if c.SetDirection(Direction(7)) {
		t.Error("Invalid direction should be rejected")
	}
}

// TestDirectionTakesEffectNextStep tests that a turn does not apply retroactively
func TestDirectionTakesEffectNextStep(t *testing.T) {
	c := newTestChain(t)
	c.SetDirection(Down)

	// The cursor was already one cell to the right; the head goes there first
	stepOnce(t, c)
	if c.Head() != (Cell{0, 3}) {
		t.Fatalf("Expected head at (0,3), got %v", c.Head())
	}
	stepOnce(t, c)
	if c.Head() != (Cell{1, 3}) {
		t.Errorf("Expected head at (1,3), got %v", c.Head())
	}
}

// TestReverseDirection tests the unchecked reversal
func TestReverseDirection(t *testing.T) {
	c := newTestChain(t)
	c.ReverseDirection()
	if c.Direction() != Left {
		t.Errorf("Expected Left, got %v", c.Direction())
	}
}

// TestGrowHead tests insertion and re-linking of a new head
func TestGrowHead(t *testing.T) {
	c := newTestChain(t)
	stepOnce(t, c)

	before := c.Segments()
	beforeFollow := make(map[int]int)
	for i := range c.segments {
		beforeFollow[c.segments[i].ID] = followID(c, i)
	}
	head := c.Head()

	c.GrowHead(head.Row, head.Col)

	if c.Len() != len(before)+1 {
		t.Fatalf("Expected length %d, got %d", len(before)+1, c.Len())
	}
	if c.Head() != head {
		t.Errorf("Expected new head at %v, got %v", head, c.Head())
	}
	newID := c.segments[0].ID
	if followID(c, 0) != -1 {
		t.Error("New head should follow the lead cursor")
	}

	for i := 1; i < c.Len(); i++ {
		id := c.segments[i].ID
		got := followID(c, i)
		if id == before[0].ID {
			if got != newID {
				t.Errorf("Former head should follow the new head, follows %d", got)
			}
			continue
		}
		if got != beforeFollow[id] {
			t.Errorf("Segment %d follow target changed from %d to %d", id, beforeFollow[id], got)
		}
	}

	if c.TestSelfCollision() {
		t.Error("New head stacked on the former head is not a collision")
	}
}

// TestRepeatedGrowHeadOnOneCell tests several growths before the next step
func TestRepeatedGrowHeadOnOneCell(t *testing.T) {
	c := newTestChain(t)
	head := c.Head()

	for i := 0; i < 3; i++ {
		c.GrowHead(head.Row, head.Col)
		if c.TestSelfCollision() {
			t.Fatalf("Growth %d on the head cell reported a collision", i+1)
		}
	}
	if c.Len() != 6 {
		t.Errorf("Expected length 6, got %d", c.Len())
	}

	stepOnce(t, c)
	if c.TestSelfCollision() {
		t.Errorf("Collision after stepping out of the stack, body %v", c.Body())
	}

	// a real hit still counts once the stack has been stepped away
	c.segments[3].Cell = c.Head()
	if !c.TestSelfCollision() {
		t.Error("Expected a body collision after the stack cleared")
	}
}

// TestGrowHeadLengthensTail tests that growth shows up at the tail over the next steps
func TestGrowHeadLengthensTail(t *testing.T) {
	c := newTestChain(t)
	c.GrowHead(0, 2)

	for i := 0; i < 3; i++ {
		stepOnce(t, c)
		if c.TestSelfCollision() {
			t.Fatalf("Unexpected collision after step %d: %v", i+1, c.Body())
		}
	}

	want := []Cell{{0, 5}, {0, 4}, {0, 3}, {0, 2}}
	if !equalCells(c.Body(), want) {
		t.Errorf("Expected body %v, got %v", want, c.Body())
	}
}

// TestGrowTail tests appending a segment on the tail
func TestGrowTail(t *testing.T) {
	c := newTestChain(t)
	tail := c.segments[c.Len()-1]

	c.GrowTail()

	if c.Len() != 4 {
		t.Fatalf("Expected length 4, got %d", c.Len())
	}
	added := c.segments[c.Len()-1]
	if added.Cell != tail.Cell {
		t.Errorf("Expected new tail on %v, got %v", tail.Cell, added.Cell)
	}
	if followID(c, c.Len()-1) != tail.ID {
		t.Errorf("New tail should follow the old tail")
	}
	if c.Head() != (Cell{0, 2}) {
		t.Errorf("Head should not move, got %v", c.Head())
	}
}

// TestSpeedUp tests the one-way step duration shrink in fast mode
func TestSpeedUp(t *testing.T) {
	c := newTestChain(t)
	c.GrowHead(0, 2)
	if c.StepDuration() != config.StepDuration {
		t.Errorf("Step duration changed without fast mode: %f", c.StepDuration())
	}

	c.SetFlags(true, false, false)
	c.GrowHead(0, 2)
	c.GrowHead(0, 2)
	want := config.StepDuration * config.SpeedUpFactor * config.SpeedUpFactor
	if math.Abs(c.StepDuration()-want) > 1e-12 {
		t.Errorf("Expected step duration %f, got %f", want, c.StepDuration())
	}

	c.SetFlags(false, false, false)
	if math.Abs(c.StepDuration()-want) > 1e-12 {
		t.Errorf("Leaving fast mode should not restore the step duration, got %f", c.StepDuration())
	}

	c.Reset(config.DefaultLength)
	if c.StepDuration() != config.StepDuration {
		t.Errorf("Reset should restore %f, got %f", config.StepDuration, c.StepDuration())
	}
}

// TestSelfCollision tests boundary, body and obstacle hits
func TestSelfCollision(t *testing.T) {
	t.Run("boundary", func(t *testing.T) {
		c := newTestChain(t)
		c.SetDirection(Up)
		stepOnce(t, c)
		if c.TestSelfCollision() {
			t.Fatal("Head at (0,3) is inside the board")
		}
		stepOnce(t, c)
		if c.Head() != (Cell{-1, 3}) {
			t.Fatalf("Expected head at (-1,3), got %v", c.Head())
		}
		if !c.TestSelfCollision() {
			t.Error("Head above row 0 should collide")
		}
	})

	t.Run("body", func(t *testing.T) {
		c := NewChain(rand.New(rand.NewSource(1)))
		c.Reset(5)
		for _, d := range []Direction{Down, Left, Up} {
			c.SetDirection(d)
			stepOnce(t, c)
			if c.TestSelfCollision() {
				t.Fatalf("Unexpected collision at %v", c.Body())
			}
		}
		stepOnce(t, c)
		t.Logf("Body after curling: %v", c.Body())
		if !c.TestSelfCollision() {
			t.Error("Head on a body cell should collide")
		}
	})

	t.Run("obstacle", func(t *testing.T) {
		c := newTestChain(t)
		c.AddObstacle(Cell{0, 3})
		stepOnce(t, c)
		if !c.TestSelfCollision() {
			t.Error("Head on an obstacle should collide")
		}
	})
}

// TestWrapMode tests that the lead cursor stays on the board in wrap mode
func TestWrapMode(t *testing.T) {
	c := newTestChain(t)
	c.SetFlags(false, true, false)
	c.SetDirection(Up)

	for i := 0; i < 45; i++ {
		stepOnce(t, c)
		cur := c.Cursor()
		if !inBounds(cur) {
			t.Fatalf("Cursor left the board at step %d: %v", i+1, cur)
		}
		if c.TestSelfCollision() {
			t.Fatalf("Unexpected collision at step %d: %v", i+1, c.Body())
		}
	}

	// (0,3) then 44 rows up: 44 mod 20 = 4 rows above row 0
	if c.Head() != (Cell{16, 3}) {
		t.Errorf("Expected head at (16,3), got %v", c.Head())
	}
}

// TestInterpolation tests continuous positions between steps
func TestInterpolation(t *testing.T) {
	c := newTestChain(t)
	c.Update(0.05)

	pos := c.Positions()
	head := cellCenter(0, 2)
	if pos[0].X != head.X+config.BlockSize/2 || pos[0].Y != head.Y {
		t.Errorf("Expected head halfway to the next cell, got %+v", pos[0])
	}
	tail := cellCenter(0, 0)
	if pos[2].X != tail.X+config.BlockSize/2 {
		t.Errorf("Expected tail halfway to the next cell, got %+v", pos[2])
	}

	c.SetPaused(true)
	if c.Update(1) {
		t.Error("Paused chain should not step")
	}
	if c.Positions()[0] != pos[0] {
		t.Error("Paused chain should not interpolate")
	}
}

// TestInterpolationWrapsAcrossEdge tests the short path across the board edge
func TestInterpolationWrapsAcrossEdge(t *testing.T) {
	var s Segment
	s.SetPosition(0, config.Columns-1)

	s.interpolate(cellCenter(0, 0), 0.05, 0.1)
	wantX := s.Anchor.X + config.BlockSize/2
	if s.Pos.X != wantX {
		t.Errorf("Expected x=%.1f moving right across the edge, got %.1f", wantX, s.Pos.X)
	}

	s.SetPosition(0, 0)
	s.interpolate(cellCenter(config.Rows-1, 0), 0.05, 0.1)
	wantY := s.Anchor.Y - config.BlockSize/2
	if s.Pos.Y != wantY {
		t.Errorf("Expected y=%.1f moving up across the edge, got %.1f", wantY, s.Pos.Y)
	}

	// elapsed past the step is not clamped
	s.SetPosition(0, 0)
	s.interpolate(cellCenter(0, 1), 0.105, 0.1)
	if s.Pos.X <= cellCenter(0, 1).X {
		t.Errorf("Expected overshoot past the target, got %.2f", s.Pos.X)
	}
}

// TestResetVisual tests the cosmetic rotation range
func TestResetVisual(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var s Segment
	for i := 0; i < 100; i++ {
		s.resetVisual(rng)
		if s.Rotation < 0 || s.Rotation >= 2*math.Pi {
			t.Fatalf("Rotation out of range: %f", s.Rotation)
		}
	}
}
