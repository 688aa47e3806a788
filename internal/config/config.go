// Package config provides YAML-based configuration loading for the board,
// timing, gravity curve and player keymaps.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for a match.
type TetrisConfig struct {
	Board   BoardConfig         `yaml:"board"`
	Timing  TimingConfig        `yaml:"timing"`
	Gravity GravityConfig       `yaml:"gravity"`
	Players PlayersConfig       `yaml:"players"`
	Keymaps []map[string]string `yaml:"keymaps"`  // action name -> key name, one per player
	KeyPool []string            `yaml:"key_pool"` // keys the generator may hand out
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`  // rows including spawn headroom
	Visible int `yaml:"visible"` // rows shown on screen
}

// TimingConfig defines the fixed waits of a match.
type TimingConfig struct {
	CountdownStep time.Duration `yaml:"countdown_step"`
	GameOverDelay time.Duration `yaml:"game_over_delay"`
	PollInterval  time.Duration `yaml:"poll_interval"`
}

// PlayersConfig defines how many players a local match starts with.
type PlayersConfig struct {
	Default int `yaml:"default"`
	Max     int `yaml:"max"`
}

// Validate checks the values that would otherwise produce a broken board
// or a busy loop.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Width < 4 {
		errs = append(errs, fmt.Errorf("board width %d is below 4", c.Board.Width))
	}
	if c.Board.Visible < 4 {
		errs = append(errs, fmt.Errorf("visible rows %d is below 4", c.Board.Visible))
	}
	if c.Board.Height <= c.Board.Visible {
		errs = append(errs, fmt.Errorf("board height %d must exceed visible rows %d", c.Board.Height, c.Board.Visible))
	}
	if c.Timing.PollInterval <= 0 {
		errs = append(errs, errors.New("poll_interval must be positive"))
	}
	if c.Timing.CountdownStep < 0 || c.Timing.GameOverDelay < 0 {
		errs = append(errs, errors.New("timing values must not be negative"))
	}
	if c.Gravity.MinInterval <= 0 {
		errs = append(errs, errors.New("gravity min_interval must be positive"))
	}
	if c.Players.Default < 1 {
		errs = append(errs, fmt.Errorf("default player count %d is below 1", c.Players.Default))
	}
	if c.Players.Max != 0 && c.Players.Max < c.Players.Default {
		errs = append(errs, fmt.Errorf("max players %d is below the default %d", c.Players.Max, c.Players.Default))
	}
	if len(c.Keymaps) == 0 {
		errs = append(errs, errors.New("at least one keymap is required"))
	}
	return errors.Join(errs...)
}
