// Package term renders game output to a terminal with ANSI color.
package term

import (
	"fmt"
	"io"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
	ansiFaint = "\033[2m"
)

// Renderer writes player-facing lines to w, colored when enabled.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a terminal renderer. Pass color=false for pipes and
// dumb terminals.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) Emit(line string) {
	fmt.Fprintln(r.w, line)
}

func (r *Renderer) EmitError(line string) {
	r.writeColored(ansiRed, line)
}

func (r *Renderer) EmitSuccess(line string) {
	r.writeColored(ansiGreen, line)
}

func (r *Renderer) UpdateStatus(summary string) {
	r.writeColored(ansiFaint+ansiCyan, summary)
}

func (r *Renderer) writeColored(code, line string) {
	if !r.color {
		fmt.Fprintln(r.w, line)
		return
	}
	fmt.Fprintln(r.w, code+line+ansiReset)
}
