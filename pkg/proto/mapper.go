package proto

import (
	"time"

	"github.com/leonVoyt/snake-game/pkg/game"
	"github.com/leonVoyt/snake-game/pkg/scores"
)

func ToProtoPoint(p game.Cell) *Point {
	return &Point{Row: int32(p.Row), Col: int32(p.Col)}
}

func FromProtoPoint(p *Point) game.Cell {
	if p == nil {
		return game.Cell{}
	}
	return game.Cell{Row: int(p.Row), Col: int(p.Col)}
}

func toProtoPoints(cells []game.Cell) []*Point {
	res := make([]*Point, len(cells))
	for i, c := range cells {
		res[i] = ToProtoPoint(c)
	}
	return res
}

func ToProtoGameState(gs game.GameState, best int) *GameStateSnapshot {
	positions := make([]*Position, len(gs.Positions))
	for i, p := range gs.Positions {
		positions[i] = &Position{X: p.X, Y: p.Y}
	}

	var crashPoint *Point
	if gs.CrashPoint != nil {
		crashPoint = ToProtoPoint(*gs.CrashPoint)
	}

	return &GameStateSnapshot{
		Body:         toProtoPoints(gs.Body),
		Positions:    positions,
		Foods:        toProtoPoints(gs.Foods),
		Obstacles:    toProtoPoints(gs.Obstacles),
		Score:        int32(gs.Score),
		BestScore:    int32(best),
		GameOver:     gs.GameOver,
		Paused:       gs.Paused,
		Mode:         gs.Mode,
		Direction:    gs.Direction.String(),
		StepDuration: gs.StepDuration,
		CrashPoint:   crashPoint,
	}
}

func ToProtoConfig(c *game.GameConfig) *GameConfig {
	if c == nil {
		return nil
	}
	var modes []string
	for m := game.ModeClassic; m.Valid(); m++ {
		modes = append(modes, m.String())
	}
	return &GameConfig{
		Rows:         int32(c.Rows),
		Columns:      int32(c.Columns),
		BlockSize:    int32(c.BlockSize),
		StepDuration: c.StepDuration,
		Modes:        modes,
	}
}

func ToProtoLeaderboard(games []scores.Game) []*LeaderboardEntry {
	res := make([]*LeaderboardEntry, len(games))
	for i, g := range games {
		res[i] = &LeaderboardEntry{
			Session: g.Session,
			Score:   int32(g.Score),
			Mode:    g.Mode,
			Date:    g.EndedAt.UTC().Format(time.RFC3339),
		}
	}
	return res
}

func ToProtoServerMessage(typeStr, sessionID string, config *game.GameConfig, state *game.GameState, best int, leaderboard []scores.Game, errStr string) *ServerMessage {
	var protoState *GameStateSnapshot
	if state != nil {
		protoState = ToProtoGameState(*state, best)
	}

	var board []*LeaderboardEntry
	if leaderboard != nil {
		board = ToProtoLeaderboard(leaderboard)
	}

	return &ServerMessage{
		Type:        typeStr,
		SessionID:   sessionID,
		Config:      ToProtoConfig(config),
		State:       protoState,
		Leaderboard: board,
		Error:       errStr,
	}
}
