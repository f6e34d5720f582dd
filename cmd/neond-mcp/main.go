package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/neondominance/internal/cards"
	"github.com/peterkuimelis/neondominance/internal/game"
	neonmcp "github.com/peterkuimelis/neondominance/internal/mcp"
)

func main() {
	catalogFile := flag.String("catalog", "", "path to a custom card catalog (default: built-in)")
	flag.Parse()

	catalog, err := loadCatalog(*catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	neonmcp.SetCatalog(catalog)

	s := server.NewMCPServer("neondominance", "1.0.0")
	neonmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) ([]*game.Card, error) {
	if path != "" {
		return cards.LoadFile(path)
	}
	return cards.Load()
}
