package game

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Record kinds
const (
	RecordStart = "start"
	RecordFrame = "frame"
)

// StepRecord is one line of a session recording. A start record carries
// the options the World was built with; every frame record carries the
// input applied before that frame's tick and the tick's dt.
type StepRecord struct {
	Type      string        `json:"type"`
	Seed      int64         `json:"seed,omitempty"`
	Mode      Mode          `json:"mode,omitempty"`
	SafeSpawn bool          `json:"safeSpawn,omitempty"`
	DT        time.Duration `json:"dt,omitempty"`
	Commands  []Command     `json:"cmds,omitempty"`
}

// GameRecorder handles asynchronous logging of session frames
type GameRecorder struct {
	file       *os.File
	writer     *bufio.Writer
	recordChan chan StepRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
}

// NewRecorder creates a recorder writing to dir
// Filename format: game_{sessionID}_{timestamp}.jsonl
func NewRecorder(dir, sessionID string) (*GameRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("game_%s_%d.jsonl", sessionID, timestamp)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	r := &GameRecorder{
		file:       f,
		writer:     bufio.NewWriter(f),
		recordChan: make(chan StepRecord, 1000), // Buffer up to 1000 frames
	}

	// Start background writer
	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

// Path returns the file being written
func (r *GameRecorder) Path() string {
	return r.file.Name()
}

// Start records the options of w. Call it once, right after NewWorld.
func (r *GameRecorder) Start(w *World) {
	r.record(StepRecord{
		Type:      RecordStart,
		Seed:      w.Seed(),
		Mode:      w.SelectedMode(),
		SafeSpawn: w.SafeSpawn(),
	})
}

// RecordFrame queues one frame
func (r *GameRecorder) RecordFrame(dt time.Duration, cmds []Command) {
	r.record(StepRecord{Type: RecordFrame, DT: dt, Commands: cmds})
}

// record queues rec. It blocks while the writer is behind: a dropped frame
// would make the replay diverge.
func (r *GameRecorder) record(rec StepRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.recordChan <- rec
}

// Close flushes the buffer and closes the file
func (r *GameRecorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.recordChan)
	r.mu.Unlock()

	r.wg.Wait() // Wait for writeLoop to finish
	return r.file.Close()
}

func (r *GameRecorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for rec := range r.recordChan {
		if err := encoder.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording frame: %v\n", err)
			continue
		}
	}
	r.writer.Flush()
}

// Replayer rebuilds a recorded session frame by frame
type Replayer struct {
	dec    *json.Decoder
	world  *World
	ctrl   *Controller
	frames int
}

// NewReplayer reads the start record from src and builds the World it
// describes. listener receives the replayed events and may be nil.
func NewReplayer(src io.Reader, listener Listener) (*Replayer, error) {
	dec := json.NewDecoder(src)

	var start StepRecord
	if err := dec.Decode(&start); err != nil {
		return nil, fmt.Errorf("failed to read start record: %w", err)
	}
	if start.Type != RecordStart {
		return nil, fmt.Errorf("recording starts with %q, want %q", start.Type, RecordStart)
	}
	if start.Seed == 0 {
		return nil, errors.New("recording has no seed")
	}

	world := NewWorld(Options{
		Seed:      start.Seed,
		Mode:      start.Mode,
		SafeSpawn: start.SafeSpawn,
		Listener:  listener,
	})
	return &Replayer{dec: dec, world: world, ctrl: NewController()}, nil
}

// World returns the replayed session
func (p *Replayer) World() *World {
	return p.world
}

// Frames returns the number of frames replayed so far
func (p *Replayer) Frames() int {
	return p.frames
}

// Next replays one frame and returns its dt. It returns io.EOF when the
// recording ends.
func (p *Replayer) Next() (time.Duration, error) {
	var rec StepRecord
	if err := p.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("failed to read frame %d: %w", p.frames+1, err)
	}
	if rec.Type != RecordFrame {
		return 0, fmt.Errorf("unexpected %q record at frame %d", rec.Type, p.frames+1)
	}

	for _, cmd := range rec.Commands {
		p.ctrl.Push(cmd)
	}
	p.ctrl.Apply(p.world)
	p.world.Tick(rec.DT)
	p.frames++
	return rec.DT, nil
}
