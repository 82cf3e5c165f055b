package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/leonVoyt/snake-game/pkg/game"
)

const (
	sampleRate = beep.SampleRate(44100)

	hitFreq      = 880
	hitLength    = 70 * time.Millisecond
	overFrom     = 440
	overTo       = 110
	overLength   = 600 * time.Millisecond
	bufferLength = 100 * time.Millisecond
)

// SoundManager plays the session cues. It implements game.Listener, and
// every method is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	hit         *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

var _ game.Listener = (*SoundManager)(nil)

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferLength)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.hit != nil {
		sm.hit.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// FoodEaten stops a hit cue that is still playing and starts it again
func (sm *SoundManager) FoodEaten(game.Cell, int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	tone, err := hitTone()
	if err != nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: tone}

	speaker.Lock()
	if sm.hit != nil {
		sm.hit.Paused = true
		sm.hit.Streamer = nil
	}
	sm.hit = ctrl
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// GameOver plays a falling tone
func (sm *SoundManager) GameOver(int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(gameOverTone())
	speaker.Unlock()
}

func hitTone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, hitFreq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(hitLength), sine), nil
}

func gameOverTone() beep.Streamer {
	n := sampleRate.N(overLength)
	return beep.Take(n, NewSweepGenerator(sampleRate, overFrom, overTo, n))
}
