package core

// Game is the interface the platform drives each tick.
// Implementations contain pure logic with no external dependencies
// (especially no Bubble Tea). The platform handles input mapping,
// timing, and terminal rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "cometfall").
	// Used for CLI commands and config lookup.
	ID() string

	// Title returns a human-readable name for display (e.g., "Cometfall").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (MoveLeft, Restart, etc.).
	// Returns the result of this tick including current game state.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *Screen)

	// State returns the current game state (lane, elapsed time, game over).
	State() GameState
}
