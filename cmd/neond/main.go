package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterkuimelis/neondominance/internal/cards"
	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
	neonnet "github.com/peterkuimelis/neondominance/internal/net"
	"github.com/peterkuimelis/neondominance/internal/term"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "play":
		runPlay(os.Args[2:])
	case "script":
		runScript(os.Args[2:])
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  neond play [--seed N] [--catalog FILE] [--no-color] [--log FILE]")
	fmt.Println("  neond script NAME [--seed N]")
	fmt.Println("  neond host [--addr ADDR] [--seed N] [--catalog FILE]")
	fmt.Println("  neond join [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play interactively against the Corporation")
	fmt.Println("  script  Run a scripted demo game (quick, install, run, full)")
	fmt.Println("  host    Host a game over a websocket")
	fmt.Println("  join    Connect to a hosted game")
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "seed for shuffle and opponent (0 = time-based)")
	catalogFile := fs.String("catalog", "", "path to a custom card catalog")
	noColor := fs.Bool("no-color", false, "disable ANSI color")
	logFile := fs.String("log", "", "write the event log here on exit")
	fs.Parse(args)

	g, logger := newGame(*seed, *catalogFile, !*noColor)
	g.Start()

	input := bufio.NewScanner(os.Stdin)
	for !g.Over() {
		fmt.Print("> ")
		if !input.Scan() {
			break
		}
		line := strings.TrimSpace(input.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := g.Execute(line); errors.Is(err, game.ErrGameOver) {
			break
		}
	}

	if *logFile != "" {
		if err := os.WriteFile(*logFile, []byte(log.FormatAll(logger.Events())), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing log: %v\n", err)
		}
	}
}

// scripts are canned command sequences for demos and smoke runs.
var scripts = map[string][]string{
	"quick": {
		"help", "hand", "system", "end",
	},
	"install": {
		"hand", "install Corroder", "installed", "memory", "credits", "end",
	},
	"run": {
		"run R&D", "end",
		"run HQ", "end",
	},
	"full": {
		"hand", "draw", "install Corroder", "installed",
		"run R&D", "end",
		"draw", "run HQ", "run", "run", "end",
		"run R&D --careful", "run", "end",
		"system",
	},
}

func runScript(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: script name required (quick, install, run, full)")
		os.Exit(1)
	}
	name := args[0]
	lines, ok := scripts[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown script %q\n", name)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("script", flag.ExitOnError)
	seed := fs.Int64("seed", 12345, "seed for shuffle and opponent")
	fs.Parse(args[1:])

	g, _ := newGame(*seed, "", false)
	g.Start()
	for _, line := range lines {
		if g.Over() {
			break
		}
		fmt.Printf("> %s\n", line)
		g.Execute(line)
	}
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	addr := fs.String("addr", ":9000", "address to listen on")
	seed := fs.Int64("seed", 0, "seed for shuffle and opponent (0 = time-based)")
	catalogFile := fs.String("catalog", "", "path to a custom card catalog")
	fs.Parse(args)

	catalog := loadCatalog(*catalogFile)
	srv := &neonnet.Server{
		Addr:    *addr,
		Seed:    resolveSeed(*seed),
		Catalog: catalog,
	}
	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := neonnet.Join(context.Background(), *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newGame(seed int64, catalogFile string, color bool) (*game.Game, *log.MemoryLogger) {
	catalog := loadCatalog(catalogFile)
	logger := log.NewMemoryLogger()
	g, err := game.New(game.Config{
		Catalog:  catalog,
		Renderer: term.NewRenderer(os.Stdout, color),
		Logger:   logger,
		Seed:     resolveSeed(seed),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return g, logger
}

func loadCatalog(path string) []*game.Card {
	var (
		catalog []*game.Card
		err     error
	)
	if path != "" {
		catalog, err = cards.LoadFile(path)
	} else {
		catalog, err = cards.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return catalog
}

func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
