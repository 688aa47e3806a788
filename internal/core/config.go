package core

// RuntimeConfig contains the settings a session passes down when it builds
// a match. The platform fills it from flags, the terminal size and the
// loaded config file.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Players int   // Number of local players
	Seed    int64 // RNG seed; 0 means derive one from the current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Players: 1,
		Seed:    0,
	}
}

// PlayerSeed derives a distinct seed for each player from the match seed so
// that two players never share a piece sequence by accident.
func (c RuntimeConfig) PlayerSeed(p PlayerID) int64 {
	return c.Seed*31 + int64(p)*7919
}
