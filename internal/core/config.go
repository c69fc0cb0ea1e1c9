package core

// RuntimeConfig describes the terminal a game is presented on.
// The presentation shell fills it from the terminal or client size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second requested from the shell (default 60)
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
