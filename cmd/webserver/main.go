package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/leonVoyt/snake-game/pkg/config"
	"github.com/leonVoyt/snake-game/pkg/scores"
)

func main() {
	var (
		addr      = flag.String("addr", config.ServerAddr, "listen address")
		dbPath    = flag.String("db", config.DatabasePath, "score database path, empty to disable")
		static    = flag.String("static", config.StaticDir, "static files directory")
		safeSpawn = flag.Bool("safe-spawn", false, "never place food or walls on occupied cells")
		onePerIP  = flag.Bool("one-per-ip", false, "allow one connection per client IP")
		recordDir = flag.String("record", "", "write a replayable input log per session to this directory")
	)
	flag.Parse()

	srv := &Server{
		staticDir: *static,
		safeSpawn: *safeSpawn,
		onePerIP:  *onePerIP,
		recordDir: *recordDir,
	}
	if *dbPath != "" {
		store, err := scores.Open(*dbPath)
		if err != nil {
			log.Fatal("Failed to open score database: ", err)
		}
		defer store.Close()
		srv.store = store
	}

	fmt.Printf("🚀 Snake Game Web Server starting on http://localhost%s\n", *addr)
	fmt.Println("📱 Connect a client to /ws (add ?codec=msgpack for binary frames)")

	log.Fatal(http.ListenAndServe(*addr, srv.Handler()))
}
