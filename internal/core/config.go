package core

// RuntimeConfig contains what the host knows about its terminal and clock.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means use current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     0,
	}
}

// Tick rate bounds for interactive speed changes.
const (
	MinTickRate = 1
	MaxTickRate = 120
)

// ClampTickRate keeps a tick rate within [MinTickRate, MaxTickRate].
func ClampTickRate(rate int) int {
	return Clamp(rate, MinTickRate, MaxTickRate)
}
