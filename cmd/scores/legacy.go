package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/leonVoyt/snake-game/pkg/scores"
)

// LegacyExport matches a browser storage dump: the best score is kept as
// a string there, older dumps also carry a list of games
type LegacyExport struct {
	BestScore any          `json:"bestScore"`
	Games     []LegacyGame `json:"games"`
}

type LegacyGame struct {
	Session string    `json:"session"`
	Score   int       `json:"score"`
	Mode    string    `json:"mode"`
	EndedAt time.Time `json:"ended_at"`
}

func parseScore(v any) (int, error) {
	switch s := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(s), nil
	case string:
		if s == "" {
			return 0, nil
		}
		return strconv.Atoi(s)
	}
	return 0, fmt.Errorf("unexpected best score %v", v)
}

// importLegacy merges an export into the store. The best score only
// replaces a lower stored one.
func importLegacy(ctx context.Context, store *scores.Store, data []byte) (improved bool, imported int, err error) {
	var export LegacyExport
	if err := json.Unmarshal(data, &export); err != nil {
		return false, 0, fmt.Errorf("failed to parse export: %w", err)
	}

	best, err := parseScore(export.BestScore)
	if err != nil {
		return false, 0, err
	}
	if best > 0 {
		if improved, err = store.UpdateBest(ctx, best); err != nil {
			return false, 0, err
		}
	}

	for _, g := range export.Games {
		err := store.RecordGame(ctx, scores.Game{
			Session: g.Session,
			Score:   g.Score,
			Mode:    g.Mode,
			EndedAt: g.EndedAt,
		})
		if err != nil {
			log.Printf("Error importing game %s: %v\n", g.Session, err)
			continue
		}
		imported++
	}
	return improved, imported, nil
}
