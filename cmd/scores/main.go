package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/leonVoyt/snake-game/pkg/config"
	"github.com/leonVoyt/snake-game/pkg/scores"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scores [-db path] <command>

Commands:
  best            print the best score
  top [-n N]      print the highest scoring games
  import FILE     merge a legacy best score export
`)
}

func main() {
	dbPath := flag.String("db", config.DatabasePath, "score database path")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	store, err := scores.Open(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	args := flag.Args()

	switch args[0] {
	case "best":
		best, err := store.Best(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(best)

	case "top":
		fs := flag.NewFlagSet("top", flag.ExitOnError)
		n := fs.Int("n", config.LeaderboardN, "number of games")
		fs.Parse(args[1:])

		games, err := store.Top(ctx, *n)
		if err != nil {
			log.Fatal(err)
		}
		for i, g := range games {
			fmt.Printf("%2d. %4d  %-8s %s  %s\n", i+1, g.Score, g.Mode, g.EndedAt.Format("2006-01-02 15:04"), g.Session)
		}

	case "import":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			log.Fatalf("Failed to read %s: %v", args[1], err)
		}
		improved, imported, err := importLegacy(ctx, store, data)
		if err != nil {
			log.Fatal(err)
		}
		best, _ := store.Best(ctx)
		fmt.Printf("✅ Import complete! Best score %d (updated: %v), %d games added to %s\n", best, improved, imported, *dbPath)

	default:
		usage()
		os.Exit(2)
	}
}
