package net

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
)

// Server hosts games over websockets. Each connection gets its own session
// and its own game.
type Server struct {
	Addr    string
	Seed    int64
	Catalog []*game.Card
}

// Run serves until the context is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /play", s.handlePlay)

	srv := &http.Server{Addr: s.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Printf("Hosting on %s. Connect with: neond join --addr <host>%s\n", s.Addr, s.Addr)

	select {
	case <-ctx.Done():
		srv.Close()
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("net: serve: %w", err)
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	ctx := r.Context()
	session := uuid.NewString()

	renderer := &wsRenderer{ctx: ctx, conn: conn}
	g, err := game.New(game.Config{
		Catalog:  s.Catalog,
		Renderer: renderer,
		Logger:   log.NewMemoryLogger(),
		Seed:     s.Seed,
	})
	if err != nil {
		wsjson.Write(ctx, conn, ServerMessage{Type: "error", Line: err.Error()})
		conn.Close(websocket.StatusInternalError, "setup failed")
		return
	}

	if err := wsjson.Write(ctx, conn, ServerMessage{Type: "welcome", Session: session}); err != nil {
		conn.Close(websocket.StatusProtocolError, "welcome failed")
		return
	}
	fmt.Printf("Session %s connected from %s\n", session, r.RemoteAddr)

	g.Start()

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			fmt.Printf("Session %s disconnected\n", session)
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
		if msg.Type != "command" {
			continue
		}

		err := g.Execute(msg.Line)
		if g.Over() || errors.Is(err, game.ErrGameOver) {
			wsjson.Write(ctx, conn, ServerMessage{
				Type:   "game_over",
				Winner: g.Winner().String(),
			})
			conn.Close(websocket.StatusNormalClosure, "game over")
			fmt.Printf("Session %s finished: %s wins\n", session, g.Winner())
			return
		}
	}
}

// wsRenderer forwards rendered lines to the remote client.
type wsRenderer struct {
	ctx  context.Context
	conn *websocket.Conn
}

func (r *wsRenderer) Emit(line string)         { r.send("output", line) }
func (r *wsRenderer) EmitError(line string)    { r.send("error", line) }
func (r *wsRenderer) EmitSuccess(line string)  { r.send("success", line) }
func (r *wsRenderer) UpdateStatus(line string) { r.send("status", line) }

func (r *wsRenderer) send(kind, line string) {
	// Render errors surface as a dropped connection on the next read.
	_ = wsjson.Write(r.ctx, r.conn, ServerMessage{Type: kind, Line: line})
}
