package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to size its world and seed its simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frame callbacks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the game for the platform layer.
type GameState struct {
	Score     int    // Floored score
	Started   bool   // Whether a run is in progress or finished (not on the ready screen)
	GameOver  bool   // Whether the run has ended
	Paused    bool   // Whether the run is paused
	Character string // Selected skin name
}

// StepResult is returned by Game.Update after each host frame.
type StepResult struct {
	State      GameState
	Steps      int  // Fixed simulation steps run during the frame
	Collided   bool // The run ended during this frame
	Milestones int  // Score milestones crossed during this frame
}
