package game

import "strings"

// Cell is a logical grid position
type Cell struct {
	Row int `json:"row" msgpack:"r"`
	Col int `json:"col" msgpack:"c"`
}

// Vec is a continuous-space position in world units
type Vec struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Direction of travel. The numeric order is fixed: adding two modulo four
// yields the opposite direction.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var deltas = [4]Cell{
	{Row: -1, Col: 0}, // Up
	{Row: 0, Col: 1},  // Right
	{Row: 1, Col: 0},  // Down
	{Row: 0, Col: -1}, // Left
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the one-cell step vector for d
func (d Direction) Delta() Cell {
	return deltas[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Mode is the game variant chosen for a session
type Mode int

const (
	ModeClassic Mode = iota
	ModeSpeed
	ModeNoDie
	ModeWalls
)

// Flags translates a mode into the chain flags it enables
func (m Mode) Flags() (fast, dontDie, walls bool) {
	switch m {
	case ModeSpeed:
		return true, false, false
	case ModeNoDie:
		return false, true, false
	case ModeWalls:
		return false, false, true
	default:
		return false, false, false
	}
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m >= ModeClassic && m <= ModeWalls
}

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeSpeed:
		return "Speed"
	case ModeNoDie:
		return "No Die"
	case ModeWalls:
		return "Walls"
	default:
		return "Unknown"
	}
}

// ParseMode accepts the menu labels and their compact forms
func ParseMode(s string) (Mode, bool) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
	switch key {
	case "classic":
		return ModeClassic, true
	case "speed", "fast":
		return ModeSpeed, true
	case "nodie", "dontdie", "wrap":
		return ModeNoDie, true
	case "walls", "wall":
		return ModeWalls, true
	}
	return ModeClassic, false
}

// GameState is a read-only snapshot of a session for front-ends
type GameState struct {
	Body         []Cell    `json:"body"`
	Positions    []Vec     `json:"positions"`
	Foods        []Cell    `json:"foods"`
	Obstacles    []Cell    `json:"obstacles"`
	Score        int       `json:"score"`
	GameOver     bool      `json:"gameOver"`
	Paused       bool      `json:"paused"`
	Mode         string    `json:"mode"`
	Direction    Direction `json:"direction"`
	StepDuration float64   `json:"stepDuration"`
	CrashPoint   *Cell     `json:"crashPoint,omitempty"`
}

// GameConfig is a DTO for board settings sent to clients on connect
type GameConfig struct {
	Rows         int     `json:"rows"`
	Columns      int     `json:"columns"`
	BlockSize    int     `json:"blockSize"`
	StepDuration float64 `json:"stepDuration"`
}
