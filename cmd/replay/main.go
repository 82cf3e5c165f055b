package main

import (
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/leonVoyt/snake-game/pkg/game"
	"github.com/leonVoyt/snake-game/pkg/proto"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReplayServer lists recordings and streams them to viewers
type ReplayServer struct {
	addr      string
	recordDir string
	speed     float64
}

func main() {
	server := &ReplayServer{}
	flag.StringVar(&server.addr, "addr", ":8081", "listen address")
	flag.StringVar(&server.recordDir, "dir", "records", "recordings directory")
	flag.Float64Var(&server.speed, "speed", 1, "playback speed multiplier")
	verify := flag.String("verify", "", "replay one file headless and print the outcome")
	flag.Parse()

	if *verify != "" {
		if err := verifyFile(os.Stdout, *verify); err != nil {
			log.Fatal(err)
		}
		return
	}

	http.HandleFunc("/", server.handleIndex)
	http.HandleFunc("/ws/replay", server.handleReplayWS)

	fmt.Printf("📼 Snake Replay Tool starting on http://localhost%s\n", server.addr)
	log.Fatal(http.ListenAndServe(server.addr, nil))
}

type RecordFile struct {
	Name      string
	Size      int64
	Time      time.Time
	SessionID string
}

// listRecords returns the recordings in dir, newest first
func listRecords(dir string) ([]RecordFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var records []RecordFile
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".jsonl" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		// expecting format: game_{sessionID}_{timestamp}.jsonl
		sessID := ""
		if parts := strings.Split(strings.TrimSuffix(f.Name(), ".jsonl"), "_"); len(parts) == 3 {
			sessID = parts[1]
		}
		records = append(records, RecordFile{
			Name:      f.Name(),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessID,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

var indexTmpl = template.Must(template.New("index").Parse(`
<!DOCTYPE html>
<html>
<head>
    <title>Snake Replays</title>
    <style>
        body { font-family: monospace; background: #1a202c; color: #fff; padding: 2rem; }
        h1 { color: #48bb78; }
        .file-list { display: grid; gap: 1rem; }
        .file-item { background: #2d3748; padding: 1rem; border-radius: 8px; }
        .meta { color: #a0aec0; font-size: 0.9em; }
        code { color: #63b3ed; }
    </style>
</head>
<body>
    <h1>📼 Replay Library</h1>
    <div class="file-list">
        {{range .}}
        <div class="file-item">
            <div class="name">{{.Name}}</div>
            <div class="meta">Session: {{.SessionID}} | Size: {{.Size}} bytes | {{.Time.Format "2006-01-02 15:04:05"}}</div>
            <code>/ws/replay?file={{.Name}}</code>
        </div>
        {{else}}
        <p>No recordings found.</p>
        {{end}}
    </div>
</body>
</html>`))

func (s *ReplayServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	records, err := listRecords(s.recordDir)
	if err != nil && !os.IsNotExist(err) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := indexTmpl.Execute(w, records); err != nil {
		log.Println("Template error:", err)
	}
}

// openRecord opens a recording by bare file name inside the record dir
func (s *ReplayServer) openRecord(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid record name %q", name)
	}
	return os.Open(filepath.Join(s.recordDir, name))
}

func (s *ReplayServer) handleReplayWS(w http.ResponseWriter, r *http.Request) {
	file, err := s.openRecord(r.URL.Query().Get("file"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer file.Close()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	p, err := game.NewReplayer(file, nil)
	if err != nil {
		log.Println("Failed to open record:", err)
		return
	}

	cfg := p.World().Config()
	if err := conn.WriteJSON(proto.ToProtoServerMessage(proto.TypeConfig, "", &cfg, nil, 0, nil, "")); err != nil {
		return
	}

	var paused atomic.Bool

	// Read Loop for controls
	go func() {
		for {
			var msg proto.ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg.Action {
			case "pause":
				paused.Store(true)
			case "resume":
				paused.Store(false)
			}
		}
	}()

	speed := s.speed
	if speed <= 0 {
		speed = 1
	}

	// Stream Loop
	for {
		for paused.Load() {
			time.Sleep(100 * time.Millisecond)
		}

		dt, err := p.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Println("Replay error:", err)
			}
			return
		}
		time.Sleep(time.Duration(float64(dt) / speed))

		state := p.World().State()
		if err := conn.WriteJSON(proto.ToProtoServerMessage(proto.TypeState, "", nil, &state, 0, nil, "")); err != nil {
			return
		}
	}
}

// verifyFile replays path without delays and reports the outcome
func verifyFile(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		games int
		total time.Duration
	)
	counter := gameCounter(func(int) { games++ })

	p, err := game.NewReplayer(f, counter)
	if err != nil {
		return err
	}
	for {
		dt, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		total += dt
	}

	w := p.World()
	fmt.Fprintf(out, "frames=%d duration=%s games_over=%d mode=%s score=%d length=%d game_over=%v\n",
		p.Frames(), total.Round(time.Millisecond), games, w.Mode(), w.Score(), w.Chain().Len(), w.IsGameOver())
	return nil
}

// gameCounter adapts a function to game.Listener, counting finished games
type gameCounter func(score int)

func (gameCounter) FoodEaten(game.Cell, int) {}
func (f gameCounter) GameOver(score int)     { f(score) }
