package game

// Renderer is the output sink the engine writes to. The engine formats its
// own lines; a renderer only decides how they reach the player. A NopRenderer
// must be substitutable for headless runs and tests.
type Renderer interface {
	// Emit writes a normal output line.
	Emit(line string)

	// EmitError writes an error line (rejected commands, failed runs).
	EmitError(line string)

	// EmitSuccess writes a highlighted success line (breaks, scores, loot).
	EmitSuccess(line string)

	// UpdateStatus replaces the one-line game status summary.
	UpdateStatus(summary string)
}

// NopRenderer discards all output.
type NopRenderer struct{}

func (NopRenderer) Emit(string)         {}
func (NopRenderer) EmitError(string)    {}
func (NopRenderer) EmitSuccess(string)  {}
func (NopRenderer) UpdateStatus(string) {}
