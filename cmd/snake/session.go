package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leonVoyt/snake-game/pkg/game"
	"github.com/leonVoyt/snake-game/pkg/scores"
)

// session drives one World from the front-end loop and keeps the best
// score and game history up to date
type session struct {
	world   *game.World
	ctrl    *game.Controller
	tracker *scores.Tracker
	id      string
	clock   game.FrameClock

	// optional input log for replays
	rec *game.GameRecorder
}

func newSession(opts game.Options, tracker *scores.Tracker, extra game.Listener) *session {
	s := &session{
		ctrl:    game.NewController(),
		tracker: tracker,
		id:      uuid.NewString(),
	}
	opts.Listener = game.MultiListener(s, extra)
	s.world = game.NewWorld(opts)
	return s
}

// FoodEaten writes a new best score as soon as it is exceeded
func (s *session) FoodEaten(_ game.Cell, score int) {
	s.tracker.Observe(context.Background(), score)
}

// GameOver records the finished game and starts a fresh session id
func (s *session) GameOver(score int) {
	s.tracker.Finish(context.Background(), scores.Game{
		Session: s.id,
		Score:   score,
		Mode:    s.world.Mode().String(),
		EndedAt: time.Now(),
	})
	s.id = uuid.NewString()
}

// record starts logging the session's input to a file in dir
func (s *session) record(dir string) error {
	rec, err := game.NewRecorder(dir, s.id)
	if err != nil {
		return err
	}
	rec.Start(s.world)
	s.rec = rec
	return nil
}

// frame applies pending input and advances the world by the time since
// the previous frame
func (s *session) frame(now time.Time) {
	dt := s.clock.Next(now)
	cmds := s.ctrl.Apply(s.world)
	s.world.Tick(dt)
	if s.rec != nil {
		s.rec.RecordFrame(dt, cmds)
	}
}

func (s *session) close() {
	if s.rec != nil {
		s.rec.Close()
	}
}
