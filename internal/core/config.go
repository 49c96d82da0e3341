package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
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

// TickSeconds returns the length of one simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the summary the platform needs after each step.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score known to the score store
	GameOver  bool // Whether the playthrough has ended
	NewRecord bool // Whether this game over set a new high score
	Paused    bool // Whether stepping is suspended (store overlay open)
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
}
