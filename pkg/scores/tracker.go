package scores

import (
	"context"
	"log"
)

// Tracker keeps a front-end's best score and mirrors improvements into
// the store. A nil store keeps the best score in memory only.
type Tracker struct {
	store *Store
	best  int
}

// NewTracker loads the stored best score
func NewTracker(ctx context.Context, store *Store) (*Tracker, error) {
	t := &Tracker{store: store}
	if store == nil {
		return t, nil
	}
	best, err := store.Best(ctx)
	if err != nil {
		return nil, err
	}
	t.best = best
	return t, nil
}

// Best returns the best score seen so far
func (t *Tracker) Best() int {
	return t.best
}

// Observe records score as the new best if it exceeds the current one
func (t *Tracker) Observe(ctx context.Context, score int) bool {
	if score <= t.best {
		return false
	}
	t.best = score
	if t.store != nil {
		if _, err := t.store.UpdateBest(ctx, score); err != nil {
			log.Println("Best score not saved:", err)
		}
	}
	return true
}

// Finish records a finished game and its score
func (t *Tracker) Finish(ctx context.Context, g Game) {
	t.Observe(ctx, g.Score)
	if t.store == nil {
		return
	}
	if err := t.store.RecordGame(ctx, g); err != nil {
		log.Println("Game not recorded:", err)
	}
}
