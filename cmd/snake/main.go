package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/leonVoyt/snake-game/pkg/audio"
	"github.com/leonVoyt/snake-game/pkg/config"
	"github.com/leonVoyt/snake-game/pkg/game"
	"github.com/leonVoyt/snake-game/pkg/input"
	"github.com/leonVoyt/snake-game/pkg/renderer"
	"github.com/leonVoyt/snake-game/pkg/scores"
)

func main() {
	var (
		modeName  = flag.String("mode", "classic", "game mode: classic, speed, nodie, walls")
		ui        = flag.String("ui", "ansi", "front-end: ansi or tcell")
		dbPath    = flag.String("db", config.DatabasePath, "score database path, empty to disable")
		mute      = flag.Bool("mute", false, "disable sound")
		seed      = flag.Int64("seed", 0, "random seed, 0 for the clock")
		safeSpawn = flag.Bool("safe-spawn", false, "never place food or walls on occupied cells")
		recordDir = flag.String("record", "", "write a replayable input log to this directory")
	)
	flag.Parse()

	mode, ok := game.ParseMode(*modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown mode %q\n", *modeName)
		os.Exit(2)
	}

	ctx := context.Background()

	var store *scores.Store
	if *dbPath != "" {
		var err error
		store, err = scores.Open(*dbPath)
		if err != nil {
			log.Printf("Scores disabled: %v", err)
		} else {
			defer store.Close()
		}
	}
	tracker, err := scores.NewTracker(ctx, store)
	if err != nil {
		log.Printf("Best score unavailable: %v", err)
		tracker, _ = scores.NewTracker(ctx, nil)
	}

	var sound game.Listener
	if !*mute {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	s := newSession(game.Options{Seed: *seed, Mode: mode, SafeSpawn: *safeSpawn}, tracker, sound)
	if *recordDir != "" {
		if err := s.record(*recordDir); err != nil {
			log.Printf("Recording disabled: %v", err)
		}
	}
	defer s.close()

	switch *ui {
	case "tcell":
		err = runScreen(s)
	default:
		err = runTerminal(s)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("\n  Thanks for playing! 👋")
}

// runTerminal drives the ANSI renderer from raw keyboard input
func runTerminal(s *session) error {
	if err := renderer.CheckTerminalSize(); err != nil {
		log.Printf("Warning: %v", err)
	}

	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		return fmt.Errorf("error opening keyboard: %w", err)
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(os.Stdout)
	render.HideCursor()
	defer render.ShowCursor()

	inputChan := inputHandler.GetInputChan()

	ticker := time.NewTicker(config.BaseTick)
	defer ticker.Stop()

	render.Render(s.world.State(), s.tracker.Best())

	for {
		select {
		case inputEvent := <-inputChan:
			if input.IsQuit(inputEvent) {
				return nil
			}
			if cmd, ok := input.ToCommand(inputEvent); ok {
				s.ctrl.Push(cmd)
			}

		case now := <-ticker.C:
			s.frame(now)
			if err := render.Render(s.world.State(), s.tracker.Best()); err != nil {
				return err
			}
		}
	}
}

// runScreen drives the tcell renderer
// pumpEvents forwards polled events to out until poll returns nil or
// done is closed
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func runScreen(s *session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	render := renderer.NewScreenRenderer(screen)

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, eventChan, done)

	ticker := time.NewTicker(config.BaseTick)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				key := input.FromTcell(ev)
				if input.IsQuit(key) {
					return nil
				}
				if cmd, ok := input.ToCommand(key); ok {
					s.ctrl.Push(cmd)
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			s.frame(now)
			render.Render(s.world.State(), s.tracker.Best())
		}
	}
}
