package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the session has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// WorldState is the phase of a play session.
type WorldState int

const (
	StatePlaying    WorldState = iota
	StateViewStats             // level finished, stats on screen
	StateBackToMenu            // player left the stats view
	StatePlayerDies            // player death sequence is playing
	StateRestart               // level must be rebuilt
)

// String returns the state name used in logs and the HUD.
func (s WorldState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateViewStats:
		return "view-stats"
	case StateBackToMenu:
		return "back-to-menu"
	case StatePlayerDies:
		return "player-dies"
	case StateRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over for this level.
func (s WorldState) Terminal() bool {
	return s == StateRestart || s == StateBackToMenu
}
