package core

// RuntimeConfig contains configuration passed to games when a run is created.
// Games use the screen size only for rendering; simulation happens in world units.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Difficulty is a preset name ("easy", "normal", "hard", "fixed").
	// Empty selects the game's configured default.
	Difficulty string

	// ConfigPath overrides the tuning file search for this run.
	ConfigPath string
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

// WithScreen returns a copy with the screen dimensions replaced.
func (c RuntimeConfig) WithScreen(w, h int) RuntimeConfig {
	c.ScreenW = w
	c.ScreenH = h
	return c
}
