// Package net hosts a game session over a websocket so a runner can play
// from another machine.
package net

// Message types for the JSON protocol over the websocket.

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	// Type is one of "welcome", "output", "error", "success", "status"
	// or "game_over".
	Type string `json:"type"`

	// Session identifies the hosted game. Sent with "welcome".
	Session string `json:"session,omitempty"`

	// Line is the rendered text for output-bearing types.
	Line string `json:"line,omitempty"`

	// Winner names the winning side with "game_over".
	Winner string `json:"winner,omitempty"`
}

// ClientMessage carries one command line from the remote runner.
type ClientMessage struct {
	Type string `json:"type"` // "command"
	Line string `json:"line"`
}
