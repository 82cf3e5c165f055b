package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leonVoyt/snake-game/pkg/config"
	"github.com/leonVoyt/snake-game/pkg/game"
	"golang.org/x/term"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	out    io.Writer
	board  [][]int
	buffer strings.Builder
}

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellFood
	cellObstacle
	cellCrash
)

// The board is drawn with a one-cell wall frame around the playfield
const (
	frameRows = config.Rows + 2
	frameCols = config.Columns + 2
)

// NewTerminalRenderer creates a new terminal renderer writing to out
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, frameRows)
	for i := range board {
		board[i] = make([]int, frameCols)
	}

	return &TerminalRenderer{
		out:   out,
		board: board,
	}
}

// clearScreen clears the terminal using ANSI escape codes
func (r *TerminalRenderer) clearScreen() {
	r.buffer.WriteString("\033[H\033[2J\033[3J")
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// set marks a playfield cell, ignoring cells outside the frame
func (r *TerminalRenderer) set(p game.Cell, kind int) {
	y, x := p.Row+1, p.Col+1
	if y < 0 || y >= frameRows || x < 0 || x >= frameCols {
		return
	}
	r.board[y][x] = kind
}

// Render renders the game state to the terminal
func (r *TerminalRenderer) Render(state game.GameState, best int) error {
	r.buffer.Reset()
	r.clearScreen()

	// Reset board
	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}

	// Draw walls
	for x := 0; x < frameCols; x++ {
		r.board[0][x] = cellWall
		r.board[frameRows-1][x] = cellWall
	}
	for y := 0; y < frameRows; y++ {
		r.board[y][0] = cellWall
		r.board[y][frameCols-1] = cellWall
	}

	for _, f := range state.Foods {
		r.set(f, cellFood)
	}
	for _, o := range state.Obstacles {
		r.set(o, cellObstacle)
	}

	// Tail first so a stacked head stays visible
	for i := len(state.Body) - 1; i >= 0; i-- {
		if i == 0 {
			r.set(state.Body[i], cellHead)
		} else {
			r.set(state.Body[i], cellBody)
		}
	}

	// Draw crash point if game over
	if state.GameOver && state.CrashPoint != nil {
		r.set(*state.CrashPoint, cellCrash)
	}

	r.buffer.WriteString("\n  🐍 SNAKE GAME 🐍\n")
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  Best: %d  |  Mode: %s  |  Length: %d\n\n",
		state.Score, best, state.Mode, len(state.Body)))

	// Render board
	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellWall:
				r.buffer.WriteString(config.CharWall)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellObstacle:
				r.buffer.WriteString(config.CharObstacle)
			case cellCrash:
				r.buffer.WriteString(config.CharCrash)
			}
		}
		r.buffer.WriteString("\n")
	}

	r.buffer.WriteString("\n  Use WASD or Arrow keys to move, 1-4 to pick a mode\n")
	r.buffer.WriteString("  P to pause, X to end, Q to quit\n")

	if state.Paused {
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press P to continue\n")
	}

	if state.GameOver {
		r.buffer.WriteString("\n  💀 GAME OVER! Press R to restart or Q to quit\n")
	}

	_, err := io.WriteString(r.out, r.buffer.String())
	return err
}

// CheckTerminalSize reports an error when stdout is a terminal too small
// for the board. Non-terminal outputs always pass.
func CheckTerminalSize() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}
	return fitsBoard(width, height)
}

// fitsBoard checks a width and height in character cells
func fitsBoard(width, height int) error {
	// Each cell is two columns wide; plus margin, header and footer lines
	needW := frameCols*2 + 2
	needH := frameRows + 8
	if width < needW || height < needH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", width, height, needW, needH)
	}
	return nil
}
