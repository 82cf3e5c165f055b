package scores

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "snake.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestBestScore tests that only improvements replace the best score
func TestBestScore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	best, err := s.Best(ctx)
	if err != nil || best != 0 {
		t.Fatalf("Expected empty best score 0, got %d (%v)", best, err)
	}

	steps := []struct {
		score    int
		improved bool
		best     int
	}{
		{5, true, 5},
		{3, false, 5},
		{5, false, 5},
		{12, true, 12},
	}
	for _, st := range steps {
		improved, err := s.UpdateBest(ctx, st.score)
		if err != nil {
			t.Fatalf("UpdateBest(%d): %v", st.score, err)
		}
		if improved != st.improved {
			t.Errorf("UpdateBest(%d) improved=%v, want %v", st.score, improved, st.improved)
		}
		if got, _ := s.Best(ctx); got != st.best {
			t.Errorf("After %d expected best %d, got %d", st.score, st.best, got)
		}
	}
}

// TestBestScorePersists tests reopening the same file
func TestBestScorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snake.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateBest(ctx, 9); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if best, _ := s.Best(ctx); best != 9 {
		t.Errorf("Expected best 9 after reopen, got %d", best)
	}
}

// TestTopGames tests leaderboard ordering and limits
func TestTopGames(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Unix(1700000000, 0)
	games := []Game{
		{Session: "a", Score: 4, Mode: "Classic", EndedAt: base},
		{Session: "b", Score: 11, Mode: "Walls", EndedAt: base.Add(time.Minute)},
		{Session: "c", Score: 4, Mode: "Speed", EndedAt: base.Add(2 * time.Minute)},
		{Session: "d", Score: 1, Mode: "No Die", EndedAt: base.Add(3 * time.Minute)},
	}
	for _, g := range games {
		if err := s.RecordGame(ctx, g); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []string{"b", "c", "a"}
	if len(top) != len(want) {
		t.Fatalf("Expected %d games, got %d", len(want), len(top))
	}
	for i, session := range want {
		if top[i].Session != session {
			t.Errorf("Rank %d: expected session %s, got %s", i+1, session, top[i].Session)
		}
	}
	if top[0].Mode != "Walls" || !top[0].EndedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("Unexpected top game %+v", top[0])
	}

	if n, _ := s.Count(ctx); n != 4 {
		t.Errorf("Expected 4 games, got %d", n)
	}
}

// TestTracker tests best score tracking with and without a store
func TestTracker(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.UpdateBest(ctx, 3); err != nil {
		t.Fatal(err)
	}

	tr, err := NewTracker(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Best() != 3 {
		t.Fatalf("Expected loaded best 3, got %d", tr.Best())
	}
	if tr.Observe(ctx, 2) {
		t.Error("Lower score should not improve the best")
	}
	if !tr.Observe(ctx, 4) {
		t.Error("Higher score should improve the best")
	}
	if best, _ := s.Best(ctx); best != 4 {
		t.Errorf("Improvement not written, stored best %d", best)
	}

	tr.Finish(ctx, Game{Session: "x", Score: 6, Mode: "Classic"})
	if best, _ := s.Best(ctx); best != 6 {
		t.Errorf("Finish should store the best, got %d", best)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Expected 1 recorded game, got %d", n)
	}

	mem, err := NewTracker(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	mem.Finish(ctx, Game{Score: 2})
	if mem.Best() != 2 {
		t.Errorf("Memory tracker best: expected 2, got %d", mem.Best())
	}
}
