package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/leonVoyt/snake-game/pkg/game"
)

// writeRecording records a short classic session that runs off the board
func writeRecording(t *testing.T, dir string) string {
	t.Helper()
	rec, err := game.NewRecorder(dir, "abc")
	if err != nil {
		t.Fatal(err)
	}
	w := game.NewWorld(game.Options{Seed: 11, SafeSpawn: true})
	rec.Start(w)
	for i := 0; i < 30; i++ {
		w.Tick(100 * time.Millisecond)
		rec.RecordFrame(100*time.Millisecond, nil)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	return rec.Path()
}

func TestVerifyFile(t *testing.T) {
	path := writeRecording(t, t.TempDir())

	var out bytes.Buffer
	if err := verifyFile(&out, path); err != nil {
		t.Fatalf("verifyFile: %v", err)
	}
	for _, want := range []string{"frames=30", "duration=3s", "games_over=1", "game_over=true", "mode=Classic"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output %q missing %q", out.String(), want)
		}
	}
}

func TestListRecords(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir)

	records, err := listRecords(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].SessionID != "abc" {
		t.Errorf("Unexpected records %+v", records)
	}
}

func TestOpenRecordRejectsPaths(t *testing.T) {
	s := &ReplayServer{recordDir: t.TempDir()}
	for _, name := range []string{"", "../secret.jsonl", "a/b.jsonl"} {
		if f, err := s.openRecord(name); err == nil {
			f.Close()
			t.Errorf("Expected %q to be rejected", name)
		}
	}
}
