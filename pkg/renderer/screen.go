package renderer

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/leonVoyt/snake-game/pkg/config"
	"github.com/leonVoyt/snake-game/pkg/game"
)

var (
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleBody     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCrash    = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

const (
	runeWall     = '█'
	runeHead     = '@'
	runeBody     = 'o'
	runeFood     = '*'
	runeObstacle = '#'
	runeCrash    = 'X'
)

// ScreenRenderer draws a session on a tcell screen. Segments are placed
// from their interpolated positions, so motion between steps is visible
// at frame rate.
type ScreenRenderer struct {
	screen tcell.Screen
}

// NewScreenRenderer wraps an initialized screen
func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen}
}

// cellAt converts an interpolated position to the playfield cell it is
// over, wrapping positions that are mid-way across an edge
func cellAt(p game.Vec) game.Cell {
	col := int(math.Floor(p.X / config.BlockSize))
	row := int(math.Floor(p.Y / config.BlockSize))
	return game.Cell{
		Row: ((row % config.Rows) + config.Rows) % config.Rows,
		Col: ((col % config.Columns) + config.Columns) % config.Columns,
	}
}

// put draws one playfield cell, two columns wide, inside the frame
func (r *ScreenRenderer) put(p game.Cell, ch rune, style tcell.Style) {
	x, y := (p.Col+1)*2, p.Row+1
	r.screen.SetContent(x, y, ch, nil, style)
	r.screen.SetContent(x+1, y, ' ', nil, style)
}

func (r *ScreenRenderer) text(x, y int, s string) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, styleText)
		x++
	}
}

// Render draws state and shows the screen
func (r *ScreenRenderer) Render(state game.GameState, best int) {
	r.screen.Clear()

	for x := 0; x < frameCols; x++ {
		r.screen.SetContent(x*2, 0, runeWall, nil, styleWall)
		r.screen.SetContent(x*2+1, 0, runeWall, nil, styleWall)
		r.screen.SetContent(x*2, frameRows-1, runeWall, nil, styleWall)
		r.screen.SetContent(x*2+1, frameRows-1, runeWall, nil, styleWall)
	}
	for y := 0; y < frameRows; y++ {
		r.screen.SetContent(0, y, runeWall, nil, styleWall)
		r.screen.SetContent(1, y, runeWall, nil, styleWall)
		r.screen.SetContent((frameCols-1)*2, y, runeWall, nil, styleWall)
		r.screen.SetContent((frameCols-1)*2+1, y, runeWall, nil, styleWall)
	}

	for _, f := range state.Foods {
		r.put(f, runeFood, styleFood)
	}
	for _, o := range state.Obstacles {
		r.put(o, runeObstacle, styleObstacle)
	}

	for i := len(state.Positions) - 1; i >= 0; i-- {
		if i == 0 {
			r.put(cellAt(state.Positions[i]), runeHead, styleHead)
		} else {
			r.put(cellAt(state.Positions[i]), runeBody, styleBody)
		}
	}

	if state.GameOver && state.CrashPoint != nil {
		c := *state.CrashPoint
		if c.Row >= -1 && c.Row <= config.Rows && c.Col >= -1 && c.Col <= config.Columns {
			r.put(c, runeCrash, styleCrash)
		}
	}

	y := frameRows + 1
	r.text(2, y, fmt.Sprintf("Score: %d  Best: %d  Mode: %s", state.Score, best, state.Mode))
	switch {
	case state.GameOver:
		r.text(2, y+1, "GAME OVER - R to restart, Q to quit")
	case state.Paused:
		r.text(2, y+1, "PAUSED - P to continue")
	default:
		r.text(2, y+1, "WASD/Arrows move, 1-4 mode, P pause, X end, Q quit")
	}

	r.screen.Show()
}
