package game

import (
	"math/rand"
	"time"

	"github.com/leonVoyt/snake-game/pkg/config"
)

// Listener receives session events for audio and UI collaborators
type Listener interface {
	// FoodEaten fires once per consumed food with the new score
	FoodEaten(at Cell, score int)
	// GameOver fires once when a session ends with its final score
	GameOver(score int)
}

type nopListener struct{}

func (nopListener) FoodEaten(Cell, int) {}
func (nopListener) GameOver(int)        {}

type multiListener []Listener

func (m multiListener) FoodEaten(at Cell, score int) {
	for _, l := range m {
		l.FoodEaten(at, score)
	}
}

func (m multiListener) GameOver(score int) {
	for _, l := range m {
		l.GameOver(score)
	}
}

// MultiListener fans events out to every non-nil listener in order
func MultiListener(ls ...Listener) Listener {
	var m multiListener
	for _, l := range ls {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

// Options configure a World
type Options struct {
	Seed      int64 // 0 seeds from the clock
	Mode      Mode
	SafeSpawn bool // reject occupied cells when placing food and walls
	Listener  Listener
}

// World owns the chain, food, score and the game-over lifecycle
type World struct {
	chain *Chain
	foods []Cell
	score int

	selected Mode // applied on NewGame and Resume
	mode     Mode // active for the running game

	gameOver bool
	crash    *Cell

	seed      int64
	rng       *rand.Rand
	safeSpawn bool
	listener  Listener
}

// NewWorld creates a World and starts a new game
func NewWorld(opts Options) *World {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		chain:     NewChain(rng),
		seed:      seed,
		rng:       rng,
		safeSpawn: opts.SafeSpawn,
		listener:  opts.Listener,
	}
	if w.listener == nil {
		w.listener = nopListener{}
	}
	if opts.Mode.Valid() {
		w.selected = opts.Mode
	}

	w.NewGame()
	return w
}

// SetListener replaces the event listener; nil disables events
func (w *World) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	w.listener = l
}

// SetMode selects the mode for the next game (or the next Resume).
// Unknown modes are ignored.
func (w *World) SetMode(m Mode) bool {
	if !m.Valid() {
		return false
	}
	w.selected = m
	return true
}

// SelectMode is SetMode by menu label
func (w *World) SelectMode(name string) bool {
	m, ok := ParseMode(name)
	if !ok {
		return false
	}
	return w.SetMode(m)
}

func (w *World) applyMode() {
	w.mode = w.selected
	w.chain.SetFlags(w.mode.Flags())
}

// NewGame clears score, food and walls, seeds fresh food, resets the chain
// and applies the selected mode
func (w *World) NewGame() {
	w.score = 0
	w.gameOver = false
	w.crash = nil
	w.foods = w.foods[:0]

	w.chain.Reset(config.DefaultLength)
	w.applyMode()

	for i := 0; i < config.InitialFood; i++ {
		w.placeFood()
	}
}

// Tick advances the session by one frame of dt
func (w *World) Tick(dt time.Duration) {
	if w.gameOver {
		return
	}
	w.chain.Update(dt.Seconds())
	if w.chain.Paused() {
		return
	}

	head := w.chain.Head()
	if i := w.foodAt(head); i >= 0 {
		w.score++
		w.chain.GrowHead(head.Row, head.Col)
		w.removeFood(i)
		w.placeFood()

		if w.chain.walls {
			w.chain.GrowTail()
			w.placeObstacle()
		}
		w.listener.FoodEaten(head, w.score)
	}

	if w.chain.TestSelfCollision() {
		w.crash = &head
		w.EndGame()
	}
}

// EndGame freezes the session and returns the final score
func (w *World) EndGame() int {
	if w.gameOver {
		return w.score
	}
	w.chain.SetPaused(false)
	w.gameOver = true
	w.listener.GameOver(w.score)
	return w.score
}

// Pause freezes the chain
func (w *World) Pause() {
	if w.gameOver {
		return
	}
	w.chain.SetPaused(true)
}

// Resume unfreezes the chain and re-applies the selected mode
func (w *World) Resume() {
	if w.gameOver {
		return
	}
	w.chain.SetPaused(false)
	w.applyMode()
}

// TogglePause toggles between Pause and Resume
func (w *World) TogglePause() {
	if w.chain.Paused() {
		w.Resume()
	} else {
		w.Pause()
	}
}

// SetDirection forwards a heading change to the chain
func (w *World) SetDirection(d Direction) bool {
	if w.gameOver {
		return false
	}
	return w.chain.SetDirection(d)
}

// Chain exposes the chain for read access by collaborators that need
// segment identities
func (w *World) Chain() *Chain {
	return w.chain
}

// Body returns the body cells, head first
func (w *World) Body() []Cell {
	return w.chain.Body()
}

// Positions returns the interpolated segment positions, head first
func (w *World) Positions() []Vec {
	return w.chain.Positions()
}

// Foods returns a copy of the food cells
func (w *World) Foods() []Cell {
	out := make([]Cell, len(w.foods))
	copy(out, w.foods)
	return out
}

// Obstacles returns a copy of the wall cells
func (w *World) Obstacles() []Cell {
	return w.chain.Obstacles()
}

// Score returns the current score
func (w *World) Score() int {
	return w.score
}

// IsGameOver reports whether the session has ended
func (w *World) IsGameOver() bool {
	return w.gameOver
}

// IsPaused reports whether the chain is frozen
func (w *World) IsPaused() bool {
	return w.chain.Paused()
}

// Mode returns the mode of the running game
func (w *World) Mode() Mode {
	return w.mode
}

// Seed returns the effective random seed, which reproduces the session
// together with its input
func (w *World) Seed() int64 {
	return w.seed
}

// SafeSpawn reports whether placement rejects occupied cells
func (w *World) SafeSpawn() bool {
	return w.safeSpawn
}

// SelectedMode returns the mode the next game will use
func (w *World) SelectedMode() Mode {
	return w.selected
}

// State returns a snapshot of the session for front-ends
func (w *World) State() GameState {
	state := GameState{
		Body:         w.Body(),
		Positions:    w.Positions(),
		Foods:        w.Foods(),
		Obstacles:    w.Obstacles(),
		Score:        w.score,
		GameOver:     w.gameOver,
		Paused:       w.chain.Paused(),
		Mode:         w.mode.String(),
		Direction:    w.chain.Direction(),
		StepDuration: w.chain.StepDuration(),
	}
	if w.gameOver && w.crash != nil {
		crash := *w.crash
		state.CrashPoint = &crash
	}
	return state
}

// Config returns the board configuration
func (w *World) Config() GameConfig {
	return GameConfig{
		Rows:         config.Rows,
		Columns:      config.Columns,
		BlockSize:    config.BlockSize,
		StepDuration: w.chain.StepDuration(),
	}
}
