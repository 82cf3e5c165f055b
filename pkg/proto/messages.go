package proto

// Message types sent by the server
const (
	TypeConfig      = "config"
	TypeState       = "state"
	TypeLeaderboard = "leaderboard"
	TypeError       = "error"
)

type Point struct {
	Row int32 `json:"row" msgpack:"r"`
	Col int32 `json:"col" msgpack:"c"`
}

type Position struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

type GameStateSnapshot struct {
	Body         []*Point    `json:"body" msgpack:"body"`
	Positions    []*Position `json:"positions" msgpack:"pos"`
	Foods        []*Point    `json:"foods" msgpack:"foods"`
	Obstacles    []*Point    `json:"obstacles" msgpack:"obs"`
	Score        int32       `json:"score" msgpack:"score"`
	BestScore    int32       `json:"bestScore" msgpack:"best"`
	GameOver     bool        `json:"gameOver" msgpack:"over"`
	Paused       bool        `json:"paused" msgpack:"paused"`
	Mode         string      `json:"mode" msgpack:"mode"`
	Direction    string      `json:"direction" msgpack:"dir"`
	StepDuration float64     `json:"stepDuration" msgpack:"step"`
	CrashPoint   *Point      `json:"crashPoint,omitempty" msgpack:"crash,omitempty"`
}

type GameConfig struct {
	Rows         int32    `json:"rows" msgpack:"rows"`
	Columns      int32    `json:"columns" msgpack:"cols"`
	BlockSize    int32    `json:"blockSize" msgpack:"block"`
	StepDuration float64  `json:"stepDuration" msgpack:"step"`
	Modes        []string `json:"modes" msgpack:"modes"`
}

type LeaderboardEntry struct {
	Session string `json:"session" msgpack:"session"`
	Score   int32  `json:"score" msgpack:"score"`
	Mode    string `json:"mode" msgpack:"mode"`
	Date    string `json:"date" msgpack:"date"`
}

// ServerMessage is the single envelope for every server frame
type ServerMessage struct {
	Type        string              `json:"type" msgpack:"type"`
	SessionID   string              `json:"sessionId,omitempty" msgpack:"sid,omitempty"`
	Config      *GameConfig         `json:"config,omitempty" msgpack:"config,omitempty"`
	State       *GameStateSnapshot  `json:"state,omitempty" msgpack:"state,omitempty"`
	Leaderboard []*LeaderboardEntry `json:"leaderboard,omitempty" msgpack:"board,omitempty"`
	Error       string              `json:"error,omitempty" msgpack:"error,omitempty"`
}

// ClientMessage carries one action name, see game.ParseAction
type ClientMessage struct {
	Action string `json:"action" msgpack:"action"`
}
