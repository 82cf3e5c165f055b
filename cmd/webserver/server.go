package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/leonVoyt/snake-game/pkg/config"
	"github.com/leonVoyt/snake-game/pkg/game"
	"github.com/leonVoyt/snake-game/pkg/proto"
	"github.com/leonVoyt/snake-game/pkg/scores"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server hosts one game session per websocket connection
type Server struct {
	store     *scores.Store // nil disables persistence
	staticDir string
	safeSpawn bool
	onePerIP  bool
	recordDir string // empty disables recordings

	// active IP connections when onePerIP is set
	activeIPs sync.Map
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	return mux
}

func (s *Server) leaderboard(ctx context.Context) []scores.Game {
	if s.store == nil {
		return []scores.Game{}
	}
	games, err := s.store.Top(ctx, config.LeaderboardN)
	if err != nil {
		log.Println("Leaderboard error:", err)
		return []scores.Game{}
	}
	if games == nil {
		games = []scores.Game{}
	}
	return games
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(proto.ToProtoLeaderboard(s.leaderboard(r.Context()))); err != nil {
		log.Println("Leaderboard write error:", err)
	}
}

// GameServer is the state of one connection
type GameServer struct {
	id      string
	world   *game.World
	ctrl    *game.Controller
	tracker *scores.Tracker
	clock   game.FrameClock
	codec   proto.Codec
	conn    *websocket.Conn
	writeMu sync.Mutex

	// set by the game-over listener, consumed by the tick loop
	finished bool
}

func (s *Server) newGameServer(r *http.Request, conn *websocket.Conn) *GameServer {
	q := r.URL.Query()

	tracker, err := scores.NewTracker(r.Context(), s.store)
	if err != nil {
		log.Println("Best score unavailable:", err)
		tracker, _ = scores.NewTracker(r.Context(), nil)
	}

	gs := &GameServer{
		id:      uuid.NewString(),
		ctrl:    game.NewController(),
		tracker: tracker,
		codec:   proto.ParseCodec(q.Get("codec")),
		conn:    conn,
	}

	opts := game.Options{SafeSpawn: s.safeSpawn, Listener: gs}
	if m, ok := game.ParseMode(q.Get("mode")); ok {
		opts.Mode = m
	}
	if seed, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		opts.Seed = seed
	}
	gs.world = game.NewWorld(opts)
	return gs
}

// FoodEaten stores a new best score as soon as it is exceeded
func (gs *GameServer) FoodEaten(_ game.Cell, score int) {
	gs.tracker.Observe(context.Background(), score)
}

// GameOver records the finished game under the connection's session id
func (gs *GameServer) GameOver(score int) {
	gs.tracker.Finish(context.Background(), scores.Game{
		Session: gs.id,
		Score:   score,
		Mode:    gs.world.Mode().String(),
		EndedAt: time.Now(),
	})
	gs.finished = true
}

// write encodes and sends one frame; safe for concurrent use
func (gs *GameServer) write(msg *proto.ServerMessage) error {
	data, err := gs.codec.Encode(msg)
	if err != nil {
		return err
	}
	msgType := websocket.TextMessage
	if gs.codec.Binary() {
		msgType = websocket.BinaryMessage
	}

	gs.writeMu.Lock()
	defer gs.writeMu.Unlock()
	return gs.conn.WriteMessage(msgType, data)
}

// reply writes msg and logs a failed write; false means the connection
// is unusable
func (gs *GameServer) reply(msg *proto.ServerMessage) bool {
	if err := gs.write(msg); err != nil {
		log.Printf("Write error on session %s: %v\n", gs.id, err)
		return false
	}
	return true
}

func (gs *GameServer) stateMessage() *proto.ServerMessage {
	state := gs.world.State()
	return proto.ToProtoServerMessage(proto.TypeState, gs.id, nil, &state, gs.tracker.Best(), nil, "")
}

func (gs *GameServer) configMessage() *proto.ServerMessage {
	cfg := gs.world.Config()
	return proto.ToProtoServerMessage(proto.TypeConfig, gs.id, &cfg, nil, gs.tracker.Best(), nil, "")
}

func (s *Server) leaderboardMessage(ctx context.Context, id string) *proto.ServerMessage {
	return proto.ToProtoServerMessage(proto.TypeLeaderboard, id, nil, nil, 0, s.leaderboard(ctx), "")
}

// readLoop decodes client actions into the controller until the
// connection fails
func (s *Server) readLoop(ctx context.Context, gs *GameServer, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := gs.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("Read error:", err)
			}
			return
		}

		var msg proto.ClientMessage
		if err := gs.codec.Decode(data, &msg); err != nil {
			if !gs.reply(&proto.ServerMessage{Type: proto.TypeError, Error: err.Error()}) {
				return
			}
			continue
		}

		if msg.Action == "leaderboard" {
			if !gs.reply(s.leaderboardMessage(ctx, gs.id)) {
				return
			}
			continue
		}

		cmd, ok := game.ParseAction(msg.Action)
		if !ok {
			if !gs.reply(&proto.ServerMessage{Type: proto.TypeError, Error: "unknown action: " + msg.Action}) {
				return
			}
			continue
		}
		gs.ctrl.Push(cmd)
	}
}

func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	log.Println("New WebSocket connection from:", r.RemoteAddr)

	if s.onePerIP {
		ip := remoteIP(r.RemoteAddr)
		if _, loaded := s.activeIPs.LoadOrStore(ip, true); loaded {
			log.Printf("Connection rejected: IP %s is already connected\n", ip)
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Already connected"))
			return
		}
		defer s.activeIPs.Delete(ip)
	}

	ctx := r.Context()
	gs := s.newGameServer(r, conn)

	if !gs.reply(gs.configMessage()) || !gs.reply(gs.stateMessage()) || !gs.reply(s.leaderboardMessage(ctx, gs.id)) {
		return
	}

	var rec *game.GameRecorder
	if s.recordDir != "" {
		if rec, err = game.NewRecorder(s.recordDir, gs.id); err != nil {
			log.Println("Recording disabled:", err)
		} else {
			rec.Start(gs.world)
			defer rec.Close()
		}
	}

	done := make(chan struct{})
	go s.readLoop(ctx, gs, done)

	ticker := time.NewTicker(config.BaseTick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Printf("Session %s closed with score %d\n", gs.id, gs.world.Score())
			return
		case now := <-ticker.C:
			dt := gs.clock.Next(now)
			cmds := gs.ctrl.Apply(gs.world)
			gs.world.Tick(dt)
			if rec != nil {
				rec.RecordFrame(dt, cmds)
			}

			if !gs.reply(gs.stateMessage()) {
				return
			}
			if gs.finished {
				gs.finished = false
				if !gs.reply(s.leaderboardMessage(ctx, gs.id)) {
					return
				}
			}
		}
	}
}
