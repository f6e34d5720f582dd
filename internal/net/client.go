package net

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peterkuimelis/neondominance/internal/term"
)

// Join connects to a hosting server and runs a terminal REPL against the
// remote game.
func Join(ctx context.Context, addr string) error {
	url := addr
	if !strings.Contains(url, "://") {
		url = "ws://" + url
	}
	url = strings.TrimRight(url, "/") + "/play"

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("net: dial %s: %w", url, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	renderer := term.NewRenderer(os.Stdout, true)
	input := bufio.NewScanner(os.Stdin)

	// Server output arrives between prompts; drain until the status line,
	// which marks the end of a command's output.
	drain := func() error {
		for {
			var msg ServerMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				return fmt.Errorf("net: read: %w", err)
			}
			switch msg.Type {
			case "welcome":
				fmt.Printf("Connected. Session %s.\n", msg.Session)
			case "output":
				renderer.Emit(msg.Line)
			case "error":
				renderer.EmitError(msg.Line)
			case "success":
				renderer.EmitSuccess(msg.Line)
			case "status":
				renderer.UpdateStatus(msg.Line)
				return nil
			case "game_over":
				return errGameEnded
			}
		}
	}

	if err := drain(); err != nil {
		return finishJoin(err)
	}

	for {
		fmt.Print("> ")
		if !input.Scan() {
			return input.Err()
		}
		line := strings.TrimSpace(input.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if err := wsjson.Write(ctx, conn, ClientMessage{Type: "command", Line: line}); err != nil {
			return fmt.Errorf("net: send: %w", err)
		}
		if err := drain(); err != nil {
			return finishJoin(err)
		}
	}
}

var errGameEnded = fmt.Errorf("game ended")

func finishJoin(err error) error {
	if err == errGameEnded {
		fmt.Println("The session has ended.")
		return nil
	}
	return err
}
