package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultConfig returns the hardcoded configuration used when no YAML can be
// read at all.
func DefaultConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:   10,
			Height:  22,
			Visible: 20,
		},
		Timing: TimingConfig{
			CountdownStep: 600 * time.Millisecond,
			GameOverDelay: 800 * time.Millisecond,
			PollInterval:  5 * time.Millisecond,
		},
		Gravity: DefaultGravity(),
		Players: PlayersConfig{
			Default: 1,
			Max:     4,
		},
		Keymaps: []map[string]string{
			{
				"left":    "left",
				"right":   "right",
				"down":    "down",
				"rotate":  "up",
				"drop":    "space",
				"hold":    "l",
				"restart": "r",
				"quit":    "q",
			},
			{
				"left":    "a",
				"right":   "d",
				"down":    "s",
				"rotate":  "w",
				"drop":    "e",
				"hold":    "`",
				"restart": "r",
				"quit":    "q",
			},
		},
		KeyPool: []string{
			"tab", "enter", "f", "g", "h", "j", "k", "z", "x", "c", "v", "b",
			"n", "m", "o", "i", "p", "u", "y", "t", "*", "+",
		},
	}
}
