// Package mcp exposes the game over the Model Context Protocol so an agent
// can play the runner through stdio tools.
package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
)

// GameSession holds one MCP-driven game. The engine is synchronous, so the
// session just captures rendered output between tool calls.
type GameSession struct {
	ID       string
	game     *game.Game
	renderer *captureRenderer
	logger   *log.MemoryLogger
}

// NewGameSession builds a game from the catalog and starts it.
func NewGameSession(catalog []*game.Card, seed int64) (*GameSession, error) {
	renderer := &captureRenderer{}
	logger := log.NewMemoryLogger()
	g, err := game.New(game.Config{
		Catalog:  catalog,
		Renderer: renderer,
		Logger:   logger,
		Seed:     seed,
	})
	if err != nil {
		return nil, fmt.Errorf("mcp: new game: %w", err)
	}

	sess := &GameSession{
		ID:       uuid.NewString(),
		game:     g,
		renderer: renderer,
		logger:   logger,
	}
	sess.game.Start()
	return sess, nil
}

// Execute runs one command and returns the tool response for it.
func (s *GameSession) Execute(line string) *ToolResponse {
	err := s.game.Execute(line)
	resp := s.response()
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// response snapshots captured output plus the current state view.
func (s *GameSession) response() *ToolResponse {
	return &ToolResponse{
		SessionID: s.ID,
		Output:    s.renderer.drain(),
		State:     s.stateView(),
		GameOver:  s.game.Over(),
		Winner:    winnerLabel(s.game),
	}
}

func (s *GameSession) stateView() *StateView {
	g := s.game
	view := &StateView{
		Turn:         g.Turn(),
		Phase:        g.Phase().String(),
		Credits:      g.Credits(),
		Clicks:       g.Clicks(),
		MemoryUsed:   g.MemoryUsed(),
		MemoryLimit:  g.MemoryLimit(),
		HandLimit:    g.HandLimit(),
		DeckSize:     g.DeckSize(),
		RunnerPoints: g.RunnerPoints(),
		CorpPoints:   g.CorpPoints(),
	}
	for _, ci := range g.Hand() {
		view.Hand = append(view.Hand, ci.DisplayString())
	}
	for _, ci := range g.Installed() {
		view.Installed = append(view.Installed, ci.DisplayString())
	}
	if r := g.ActiveRun(); r != nil {
		view.Run = &RunView{
			Server:   r.Server,
			Approach: r.Approach.String(),
			Phase:    r.PhaseName(),
		}
		if ice := r.CurrentIce(); ice != nil {
			view.Run.Ice = ice.String()
		}
	}
	return view
}

func winnerLabel(g *game.Game) string {
	if !g.Over() {
		return ""
	}
	return g.Winner().String()
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string     `json:"session_id"`
	Output    []string   `json:"output"`
	State     *StateView `json:"state,omitempty"`
	Error     string     `json:"error,omitempty"`
	GameOver  bool       `json:"game_over"`
	Winner    string     `json:"winner,omitempty"`
}

// StateView is the runner's view of the game for tool responses.
type StateView struct {
	Turn         int      `json:"turn"`
	Phase        string   `json:"phase"`
	Credits      int      `json:"credits"`
	Clicks       int      `json:"clicks"`
	MemoryUsed   int      `json:"memory_used"`
	MemoryLimit  int      `json:"memory_limit"`
	HandLimit    int      `json:"hand_limit"`
	DeckSize     int      `json:"deck_size"`
	RunnerPoints int      `json:"runner_points"`
	CorpPoints   int      `json:"corp_points"`
	Hand         []string `json:"hand"`
	Installed    []string `json:"installed,omitempty"`
	Run          *RunView `json:"run,omitempty"`
}

// RunView describes the active run, when there is one.
type RunView struct {
	Server   string `json:"server"`
	Approach string `json:"approach"`
	Phase    string `json:"phase"`
	Ice      string `json:"ice,omitempty"`
}

// captureRenderer buffers rendered lines until the next tool call drains
// them. The status line is dropped; the state view covers it.
type captureRenderer struct {
	mu    sync.Mutex
	lines []string
}

func (r *captureRenderer) Emit(line string)        { r.append(line) }
func (r *captureRenderer) EmitError(line string)   { r.append("! " + line) }
func (r *captureRenderer) EmitSuccess(line string) { r.append(line) }
func (r *captureRenderer) UpdateStatus(string)     {}

func (r *captureRenderer) append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *captureRenderer) drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.lines
	r.lines = nil
	if lines == nil {
		lines = []string{}
	}
	return lines
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
