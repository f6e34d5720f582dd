package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/neondominance/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// catalog is the card pool used for new games, set by main.
var catalog []*game.Card

// SetCatalog sets the card pool used by start_game.
func SetCatalog(cards []*game.Card) {
	catalog = cards
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(runCommandTool(), handleRunCommand)
	s.AddTool(getStateTool(), handleGetState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new game against the automated Corporation. "+
			"Returns the opening output and the runner's starting state. "+
			"Only one game runs per process; starting again abandons the old one."),
		mcp.WithNumber("seed", mcp.Description("Seed for deck shuffle and opponent behavior. Identical seeds replay identically. Defaults to 0.")),
	)
}

func runCommandTool() mcp.Tool {
	return mcp.NewTool("run_command",
		mcp.WithDescription("Execute one game command as the runner, e.g. 'draw', 'install Corroder', "+
			"'run HQ --stealth', 'jack_out', 'end'. 'help' lists commands, 'man <command>' explains one. "+
			"Rejected commands leave the game unchanged; the error says why."),
		mcp.WithString("line", mcp.Required(), mcp.Description("The command line to execute")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state without acting. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := request.GetInt("seed", 0)

	sess, err := NewGameSession(catalog, int64(seed))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func handleRunCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	line := strings.TrimSpace(request.GetString("line", ""))
	if line == "" {
		return mcp.NewToolResultError("line must not be empty"), nil
	}

	resp := activeSession.Execute(line)
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.response())), nil
}
